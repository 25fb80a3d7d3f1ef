package utils

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"gorm.io/datatypes"
)

// CalculateMD5 计算字节串的MD5摘要（十六进制小写）
// 用作嵌入向量缓存键与匹配结果对象命名
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// MD5OfString 字符串版MD5，省去调用方的类型转换
func MD5OfString(s string) string {
	return CalculateMD5([]byte(s))
}

// MarshalToJSONColumn 把任意值序列化为gorm的JSON列值
// 序列化失败时返回空对象，持久化路径不因明细序列化中断
func MarshalToJSONColumn(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}
