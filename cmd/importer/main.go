package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"chiroportaal/internal/config"
	"chiroportaal/internal/db"
	"chiroportaal/internal/importer"
	memberrepo "chiroportaal/internal/repository/member"
	parentrepo "chiroportaal/internal/repository/parent"
	membersvc "chiroportaal/internal/service/member"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to the member CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	file, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer file.Close()

	members := membersvc.New(memberrepo.NewPostgres(pool, logger), parentrepo.NewPostgres(pool, logger))

	count, err := importer.NewCSVImporter(file, members).Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	logger.Info("import finished", zap.Int("imported", count))
}
