package reportutils

import (
	"context"
	"time"

	"ecovoiceapi/pkg/config"

	"github.com/redis/go-redis/v9"
)

var lockScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur and cur ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", tonumber(ARGV[2]))
return 1
`)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func lockKey(reportId string) string {
	return "claimlock:" + reportId
}

// LockReport takes (or refreshes) the claim lock on a report for owner.
// It reports false when another owner holds the lock.
func LockReport(redisCli *redis.Client, ctx context.Context, reportId string, owner string) (bool, error) {

	res, err := lockScript.Run(ctx, redisCli, []string{lockKey(reportId)}, owner, config.CLAIM_LOCK_DURATION.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil

}

func UnlockReport(redisCli *redis.Client, reportId string, owner string) (bool, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := unlockScript.Run(ctx, redisCli, []string{lockKey(reportId)}, owner).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil

}
