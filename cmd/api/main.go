package main

import (
	"context"
	"log"
	"os"
	"strings"

	"llmboard/internal/model"
	"llmboard/internal/pkg"
	"llmboard/internal/repository/mysql"
	"llmboard/internal/repository/redis"
	"llmboard/internal/router"
	"llmboard/internal/service"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	dsn := envOr("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/llmboard?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}
	defer mysql.Close()

	// 连接redis
	if err := redis.Init(envOr("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), 0); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.Hardware{},
		&model.LlmModel{},
		&model.Benchmark{},
		&model.BenchmarkUpvote{},
		&model.CommunityNote{},
		&model.ReputationEvent{},
		&model.ReputationOutbox{},
	); err != nil {
		panic(err)
	}

	// 积分事件外发：配了broker走Kafka，否则只打日志
	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("KAFKA_TOPIC", "reputation-events"),
		})
		if err != nil {
			log.Fatalf("kafka producer init: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, sender).Run(relayCtx)

	hf := pkg.NewHFClient(os.Getenv("HUGGINGFACE_TOKEN"))

	// Gin
	r := router.InitRouter(mysql.DB, hf)
	if err := r.Run(envOr("LISTEN_ADDR", ":8080")); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
