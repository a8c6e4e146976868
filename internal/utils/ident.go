package utils

import (
	"errors"
	"os"
	"sync"

	hashids "github.com/speps/go-hashids/v2"
)

// ErrInvalidID 表示对外暴露的评论 ID 无法解码回数据库主键。
// 调用方应将其视为客户端错误(400)，而不是服务端故障。
var ErrInvalidID = errors.New("invalid identifier")

var (
	hashidOnce sync.Once
	hashid     *hashids.HashID
)

func getHashID() *hashids.HashID {
	hashidOnce.Do(func() {
		salt := os.Getenv("ID_SALT")
		if salt == "" {
			salt = "plume"
		}
		hd := hashids.NewData()
		hd.Salt = salt
		hd.MinLength = 8
		h, err := hashids.NewWithData(hd)
		if err != nil {
			panic(err)
		}
		hashid = h
	})
	return hashid
}

// EncodeID encodes a native database id into the opaque public id
// used at the API boundary.
func EncodeID(id uint) string {
	s, err := getHashID().EncodeInt64([]int64{int64(id)})
	if err != nil {
		// EncodeInt64 only fails on negative input, which cannot happen
		// for a uint primary key.
		return ""
	}
	return s
}

// DecodeID is the inverse of EncodeID. Malformed or foreign strings
// return ErrInvalidID.
func DecodeID(s string) (uint, error) {
	if s == "" {
		return 0, ErrInvalidID
	}
	nums, err := getHashID().DecodeInt64WithError(s)
	if err != nil || len(nums) != 1 || nums[0] < 0 {
		return 0, ErrInvalidID
	}
	return uint(nums[0]), nil
}
