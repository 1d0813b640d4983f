package utils

import (
	"crypto/rand"
	"math/big"
)

// passwordAlphabet 随机密码使用的字符集
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomPassword 生成指定长度的随机密码，用于受邀用户的初始口令
func RandomPassword(length int) (string, error) {
	if length < 10 {
		length = 10
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
