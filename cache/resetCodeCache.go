package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

const (
	resetCodeKey = "reset_code:%s"
	resetCodeTTL = 10 * time.Minute
)

// ResetCodeCache holds short-lived password-reset codes keyed by email.
// Codes expire on their own, nothing lives in process memory.
type ResetCodeCache struct {
	cli    *redis.Client
	logger *logrus.Logger
}

func NewResetCodeCache(host, port string, logger *logrus.Logger) *ResetCodeCache {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})

	return &ResetCodeCache{
		cli:    client,
		logger: logger,
	}
}

func (rc *ResetCodeCache) Ping() {
	val, _ := rc.cli.Ping().Result()
	rc.logger.Println(val)
}

func (rc *ResetCodeCache) PostResetCode(email string, code string) error {
	key := constructResetCodeKey(email)

	err := rc.cli.Set(key, code, resetCodeTTL).Err()
	if err != nil {
		rc.logger.WithFields(logrus.Fields{"path": "cache/resetcode"}).Error("Error setting reset code in Redis: ", err)
		return err
	}
	return nil
}

func (rc *ResetCodeCache) GetResetCode(email string) (string, error) {
	key := constructResetCodeKey(email)

	code, err := rc.cli.Get(key).Result()
	if err != nil {
		return "", err
	}
	return code, nil
}

func (rc *ResetCodeCache) DeleteResetCode(email string) error {
	key := constructResetCodeKey(email)
	return rc.cli.Del(key).Err()
}

func constructResetCodeKey(email string) string {
	return fmt.Sprintf(resetCodeKey, email)
}
