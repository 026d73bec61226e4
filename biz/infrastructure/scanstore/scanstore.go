package scanstore

import (
	"context"
	"encoding/json"
	"score-entry/biz/infrastructure/config"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/util/log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// 临时扫描数据的实时存储
// 一个哈希表对应一棵子树, 每次写入/删除都在变更频道上广播,
// 订阅方收到通知后重读整棵子树, 语义为"最后一次写入可见"

// ScannerStatus 扫描设备心跳, 由外部设备写入
type ScannerStatus struct {
	Online        bool   `json:"online"`
	LastHeartbeat string `json:"lastHeartbeat,omitempty"`
}

type IScanStore interface {
	ReadAll(ctx context.Context) (map[string]map[string]any, error)
	Subscribe(ctx context.Context, onValue func(map[string]map[string]any)) (func(), error)
	Write(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	ReadStatus(ctx context.Context) (*ScannerStatus, error)
}

type RedisStore struct {
	client *redis.Client
}

var instance *RedisStore
var once sync.Once

// GetRedisStore 构造实时存储客户端
func GetRedisStore(config *config.Config) *RedisStore {
	once.Do(func() {
		instance = &RedisStore{
			client: redis.NewClient(&redis.Options{
				Addr:     config.ScanStore.Addr,
				Password: config.ScanStore.Password,
				DB:       config.ScanStore.DB,
			}),
		}
	})
	return instance
}

// ReadAll 读取整棵扫描子树, 子树不存在时返回空映射
func (s *RedisStore) ReadAll(ctx context.Context) (map[string]map[string]any, error) {
	raw, err := s.client.HGetAll(ctx, consts.ScanResultsPath).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]any, len(raw))
	for id, value := range raw {
		var fields map[string]any
		if err := json.Unmarshal([]byte(value), &fields); err != nil {
			log.Error("scanstore: 解析记录失败 id=%s: %v", id, err)
			continue
		}
		out[id] = fields
	}
	return out, nil
}

// Subscribe 订阅子树变更, 注册后立即推送一次当前快照
// 返回的取消函数可以重复调用
func (s *RedisStore) Subscribe(ctx context.Context, onValue func(map[string]map[string]any)) (func(), error) {
	pubsub := s.client.Subscribe(ctx, consts.ScanChangeChannel)
	// 确认订阅建立, 避免漏掉紧随其后的变更
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		s.deliver(ctx, onValue)
		ch := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				s.deliver(ctx, onValue)
			}
		}
	}()

	var closeOnce sync.Once
	return func() {
		closeOnce.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}, nil
}

func (s *RedisStore) deliver(ctx context.Context, onValue func(map[string]map[string]any)) {
	rows, err := s.ReadAll(ctx)
	if err != nil {
		// 读取失败降级为空快照, 不向上层抛错
		log.Error("scanstore: 读取快照失败: %v", err)
		onValue(nil)
		return
	}
	onValue(rows)
}

// Write 合并写入一条记录, 已有字段保留
func (s *RedisStore) Write(ctx context.Context, id string, fields map[string]any) error {
	existing, err := s.client.HGet(ctx, consts.ScanResultsPath, id).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	merged := make(map[string]any)
	if err == nil && existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			log.Error("scanstore: 合并时解析旧记录失败 id=%s: %v", id, err)
			merged = make(map[string]any)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, consts.ScanResultsPath, id, string(data)).Err(); err != nil {
		return err
	}
	return s.notify(ctx)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.HDel(ctx, consts.ScanResultsPath, id).Err(); err != nil {
		return err
	}
	return s.notify(ctx)
}

// Clear 一次性删除整棵子树
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, consts.ScanResultsPath).Err(); err != nil {
		return err
	}
	return s.notify(ctx)
}

func (s *RedisStore) ReadStatus(ctx context.Context) (*ScannerStatus, error) {
	raw, err := s.client.Get(ctx, consts.ScannerStatusKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var status ScannerStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *RedisStore) notify(ctx context.Context) error {
	if err := s.client.Publish(ctx, consts.ScanChangeChannel, "changed").Err(); err != nil {
		log.Error("scanstore: 广播变更失败: %v", err)
	}
	return nil
}
