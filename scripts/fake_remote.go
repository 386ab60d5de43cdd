//go:build ignore

// fake_remote изображает удалённую сторону синхронизации: читает записи из outbox
// стрима и отвечает подтверждением в ack стрим.
//
//	go run scripts/fake_remote.go --redis localhost:6379 --reject-every 3
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

type envelope struct {
	Collection string          `json:"collection"`
	RecordID   string          `json:"record_id"`
	Payload    json.RawMessage `json:"payload"`
	QueuedAt   int64           `json:"queued_at"`
}

type ack struct {
	Collection string `json:"collection"`
	RecordID   string `json:"record_id"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

func main() {
	redisAddr := pflag.String("redis", "localhost:6379", "Redis address for streams")
	outbox := pflag.String("outbox", "stream:records:sync", "stream with outgoing records")
	ackStream := pflag.String("ack", "stream:records:ack", "stream for acknowledgements")
	rejectEvery := pflag.Int("reject-every", 0, "reject every N-th record (0 - accept all)")
	fromStart := pflag.Bool("from-start", false, "read the outbox from the beginning instead of new messages only")
	pflag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	lastID := "$"
	if *fromStart {
		lastID = "0"
	}

	fmt.Printf("⏳ Waiting for records in %s...\n", *outbox)

	seen := 0
	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*outbox, lastID},
			Count:   10,
			Block:   2 * time.Second,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, redis.Nil) {
				log.Printf("Failed to read outbox: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var env envelope
				if err := json.Unmarshal([]byte(dataStr), &env); err != nil {
					log.Printf("Skipping malformed message %s: %v", msg.ID, err)
					continue
				}

				seen++
				reply := ack{Collection: env.Collection, RecordID: env.RecordID, Status: "accepted"}
				if *rejectEvery > 0 && seen%*rejectEvery == 0 {
					reply.Status = "rejected"
					reply.Reason = "rejected by fake remote"
				}

				data, _ := json.Marshal(reply)
				id, err := client.XAdd(ctx, &redis.XAddArgs{
					Stream: *ackStream,
					Values: map[string]interface{}{"data": string(data)},
				}).Result()
				if err != nil {
					log.Printf("Failed to publish ack: %v", err)
					continue
				}

				fmt.Printf("✅ %s/%s → %s (%s)\n", env.Collection, env.RecordID, reply.Status, id)
			}
		}
	}
}
