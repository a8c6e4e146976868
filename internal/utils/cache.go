package utils

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装缓存数据和过期时间
type cacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// ReadCache 是一个带 TTL 的本地 LRU 缓存，只用于读路径
// (浏览量序列等聚合查询)，不持有任何权威状态。
type ReadCache struct {
	lruCache *lru.Cache[string, cacheItem]
}

var (
	cacheOnce     sync.Once
	cacheInstance *ReadCache
)

// GetCache 获取单例缓存实例
func GetCache() *ReadCache {
	cacheOnce.Do(func() {
		// 容量 256 足够覆盖热门文章的浏览量读取
		l, err := lru.New[string, cacheItem](256)
		if err != nil {
			panic(err)
		}
		cacheInstance = &ReadCache{lruCache: l}
	})
	return cacheInstance
}

// Set 设置缓存，TTL 为过期时间
func (c *ReadCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, cacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *ReadCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.Data
}

// Delete 删除指定缓存
func (c *ReadCache) Delete(key string) {
	c.lruCache.Remove(key)
}
