package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/edu-certificate/app/config"
	"github.com/edu-certificate/app/repositories"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	configPath := flag.String("config", "", "đường dẫn file config yaml")
	dataPath := flag.String("file", "", "file yaml chứa danh sách khóa học (mặc định lecture.seed_file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Không đọc được config:", err)
	}
	if cfg.Mongo.URL == "" {
		log.Fatal("Chưa cấu hình mongo.url (store in-memory tự nạp lecture.seed_file khi khởi động)")
	}
	if *dataPath == "" {
		*dataPath = cfg.Lecture.SeedFile
	}

	lectures, err := repositories.LoadLectureFile(afero.NewOsFs(), *dataPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		log.Fatal("Không thể kết nối MongoDB:", err)
	}
	defer mongoClient.Disconnect(context.Background())

	repo := repositories.NewLectureRepository(mongoClient.Database(cfg.Mongo.Database), nil)
	count, err := repositories.SeedLectures(ctx, repo, lectures)
	if err != nil {
		log.Fatalf("Đã ghi %d khóa học trước khi lỗi: %v", count, err)
	}

	fmt.Printf("✅ Đã seed %d khóa học vào %s.lectures\n", count, cfg.Mongo.Database)
}
