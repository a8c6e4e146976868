package db

import (
	"os"
	"plume/internal/logger"
	"plume/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init 建立数据库连接并迁移表结构，进程生命周期内只调用一次。
// 返回连接句柄，服务层通过构造函数显式持有，不直接读全局变量。
func Init() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=plume port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L.Fatal("failed to connect to database", zap.Error(err))
	}

	logger.L.Info("database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Comment{},
		&models.CommentLike{},
		&models.PostLike{},
		&models.PostView{},
		&models.DailyView{},
	)
	if err != nil {
		logger.L.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.L.Info("database migration completed")

	return DB
}

// Close 在收到终止信号时关闭底层连接池
func Close() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
