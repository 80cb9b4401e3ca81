package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/Totarae/FlowcodeBatch/internal/client"
	"github.com/Totarae/FlowcodeBatch/internal/config"
	"github.com/Totarae/FlowcodeBatch/internal/dataset"
	"github.com/Totarae/FlowcodeBatch/internal/service"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Инициализация конфигурации
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Ошибка конфигурации: ", zap.Error(err))
	}

	table, err := dataset.ReadCSVFile(cfg.DatasetPath)
	if err != nil {
		logger.Fatal("Ошибка чтения CSV: ", zap.Error(err))
	}

	smartRules, err := readSmartRules(cfg.SmartRulesPath)
	if err != nil {
		logger.Fatal("Ошибка чтения smart rules: ", zap.Error(err))
	}

	api := client.New(cfg.APIBaseURL, logger)
	svc := service.NewFlowcodeService(api, logger)

	result, err := svc.Generate(context.Background(), service.Options{
		ClientID:         cfg.ClientID,
		IDColumn:         cfg.IDColumn,
		CampaignColumn:   cfg.CampaignColumn,
		RedirectURL:      cfg.RedirectURL,
		Dataset:          table,
		SmartRules:       smartRules,
		OutputDir:        cfg.OutputDir,
		PassIDAsArgument: cfg.PassIDAsArgument,
	})
	if err != nil {
		logger.Fatal("Ошибка генерации флоукодов: ", zap.Error(err))
	}

	logger.Info(result, zap.Int("rows", table.Len()))
}

// readSmartRules читает smart rules из JSON-файла.
// Пустой путь означает отсутствие правил.
func readSmartRules(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rules map[string]any
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
