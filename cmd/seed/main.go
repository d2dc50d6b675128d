package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mindprofile/internal/config"
	"mindprofile/internal/repository"
	"mindprofile/internal/service"
)

var likert = []string{
	"Strongly disagree",
	"Disagree",
	"Neutral",
	"Agree",
	"Strongly agree",
}

// Default questionnaire. Import skips entries that already exist, so
// re-running the seed is safe.
var questions = []service.QuestionInput{
	{Text: "I feel comfortable introducing myself to strangers.", Options: likert},
	{Text: "I prefer a planned day over a spontaneous one.", Options: likert},
	{Text: "I often worry about things that might go wrong.", Options: likert},
	{Text: "I enjoy exploring new ideas even when they seem impractical.", Options: likert},
	{Text: "I go out of my way to make others feel at ease.", Options: likert},
	{Text: "I find it easy to stay focused on tedious tasks.", Options: likert},
	{Text: "Large social gatherings leave me energized.", Options: likert},
	{Text: "I stay calm under pressure.", Options: likert},
	{Text: "I trust people until they give me a reason not to.", Options: likert},
	{Text: "I like my work to follow an established routine.", Options: likert},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatalw("mongo connect failed", "error", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	questionRepo := repository.NewQuestionRepo(db)
	if err := questionRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatalw("index creation failed", "error", err)
	}

	catalog := service.NewCatalogService(questionRepo, logger)
	imported, err := catalog.Import(ctx, questions)
	if err != nil {
		logger.Fatalw("seed import failed", "error", err)
	}
	logger.Infow("seed finished", "imported", imported, "skipped", len(questions)-imported)
}
