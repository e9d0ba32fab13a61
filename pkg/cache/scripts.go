package cache

import (
	"github.com/go-redis/redis/v8"
)

// clearTrackedScript deletes every key recorded in the tracking set, then the set itself.
var clearTrackedScript = redis.NewScript(`
	local set_key = KEYS[1]
	local cache_keys = redis.call('SMEMBERS', set_key)
	for i = 1, #cache_keys, 500 do
		redis.call('DEL', unpack(cache_keys, i, math.min(i + 499, #cache_keys)))
	end
	redis.call('DEL', set_key)
	return #cache_keys
`)
