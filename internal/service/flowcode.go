// Package service реализует конвейер генерации флоукодов:
// валидация входа, создание кампаний, пакетное создание URL и выгрузка изображений.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Totarae/FlowcodeBatch/internal/client"
	"github.com/Totarae/FlowcodeBatch/internal/dataset"
	"github.com/Totarae/FlowcodeBatch/internal/model"
	"go.uber.org/zap"
)

// API определяет операции удаленного сервиса, нужные конвейеру.
type API interface {
	CreateCampaign(ctx context.Context, campaign model.CampaignRequest) error
	CreateURLBatch(ctx context.Context, batch model.BulkURLRequest) ([]model.GeneratedEntry, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

// ResultGenerated возвращается после успешного прохождения всех этапов.
const ResultGenerated = "Flowcodes Generated"

// imagesDirName — имя корневой папки с изображениями.
const imagesDirName = "flowcode_images"

// clientIDPattern — канонический UUID: строчные hex-группы 8-4-4-4-12.
var clientIDPattern = regexp.MustCompile(`^[a-z0-9]{8}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{12}$`)

// Options описывает один запуск конвейера.
type Options struct {
	ClientID         string
	IDColumn         string
	CampaignColumn   string
	RedirectURL      string
	Dataset          *dataset.Table
	SmartRules       map[string]any
	OutputDir        string
	PassIDAsArgument bool
}

// FlowcodeService последовательно выполняет этапы генерации флоукодов.
type FlowcodeService struct {
	API    API
	Logger *zap.Logger
}

func NewFlowcodeService(api API, logger *zap.Logger) *FlowcodeService {
	return &FlowcodeService{API: api, Logger: logger}
}

// Generate запускает конвейер. Пустой OutputDir означает текущую директорию.
func (s *FlowcodeService) Generate(ctx context.Context, opts Options) (string, error) {
	if err := validateInput(opts); err != nil {
		return "", err
	}

	if opts.OutputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		opts.OutputDir = wd
	}

	campaigns := uniqueCampaigns(opts.Dataset, opts.CampaignColumn)

	if err := s.createCampaigns(ctx, campaigns, opts.ClientID); err != nil {
		return "", err
	}

	flowcodes := buildURLRequests(campaigns, opts)

	generated, err := s.submitBatches(ctx, campaigns, flowcodes, opts.ClientID, opts.SmartRules)
	if err != nil {
		return "", err
	}

	if err := s.saveImages(ctx, opts.OutputDir, generated); err != nil {
		return "", err
	}

	return ResultGenerated, nil
}

// validateInput проверяет идентификатор клиента и форму таблицы
// до каких-либо сетевых вызовов.
func validateInput(opts Options) error {
	if !clientIDPattern.MatchString(opts.ClientID) {
		return fmt.Errorf("идентификатор клиента %q не соответствует формату aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", opts.ClientID)
	}
	if opts.Dataset == nil {
		return errors.New("набор данных не задан")
	}
	if !opts.Dataset.HasColumn(opts.IDColumn) {
		return fmt.Errorf("колонка идентификаторов %q отсутствует в таблице: укажите имя, а не индекс", opts.IDColumn)
	}
	if !opts.Dataset.HasColumn(opts.CampaignColumn) {
		return fmt.Errorf("колонка кампаний %q отсутствует в таблице: укажите имя, а не индекс", opts.CampaignColumn)
	}
	return nil
}

// uniqueCampaigns возвращает значения колонки кампаний в порядке первого появления.
func uniqueCampaigns(table *dataset.Table, column string) []string {
	seen := make(map[string]struct{})
	var campaigns []string
	for i := 0; i < table.Len(); i++ {
		value := table.Value(i, column)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		campaigns = append(campaigns, value)
	}
	return campaigns
}

// createCampaigns создает кампании по одной, в порядке их появления в таблице.
// Статус 409 означает, что кампания уже есть, и не прерывает запуск.
func (s *FlowcodeService) createCampaigns(ctx context.Context, campaigns []string, clientID string) error {
	s.Logger.Info("Создаем кампании", zap.Int("count", len(campaigns)))

	for _, campaign := range campaigns {
		err := s.API.CreateCampaign(ctx, model.CampaignRequest{
			Name:               campaign,
			DisplayName:        campaign + " display",
			ClientID:           clientID,
			ReservedURLsUnique: false,
		})
		if err != nil {
			if isConflict(err) {
				s.Logger.Warn("Кампания уже существует, пропускаем создание", zap.String("campaign", campaign))
				continue
			}
			return err
		}
	}
	return nil
}

// buildURLRequests строит запросы на создание URL, сгруппированные по кампаниям.
// Порядок групп совпадает с порядком campaigns, порядок записей внутри группы —
// с порядком строк таблицы. Сетевых вызовов нет.
func buildURLRequests(campaigns []string, opts Options) [][]model.URLRequest {
	flowcodes := make([][]model.URLRequest, 0, len(campaigns))

	for _, campaign := range campaigns {
		var group []model.URLRequest
		for i := 0; i < opts.Dataset.Len(); i++ {
			if opts.Dataset.Value(i, opts.CampaignColumn) != campaign {
				continue
			}
			id := opts.Dataset.Value(i, opts.IDColumn)
			urlString := opts.RedirectURL
			if opts.PassIDAsArgument {
				urlString = fmt.Sprintf("%s/id=%s", opts.RedirectURL, id)
			}
			group = append(group, model.URLRequest{
				ID:      id,
				URLType: "URL",
				URL:     urlString,
			})
		}
		flowcodes = append(flowcodes, group)
	}
	return flowcodes
}

// submitBatches отправляет по одному пакетному запросу на каждую непустую
// кампанию и извлекает из ответов идентификаторы и ссылки на первое изображение.
// Кампания со статусом 409 пропускается: ее коды уже созданы и повторно не
// запрашиваются, изображений для нее не будет.
func (s *FlowcodeService) submitBatches(ctx context.Context, campaigns []string, flowcodes [][]model.URLRequest, clientID string, smartRules map[string]any) ([]model.CampaignCodes, error) {
	results := make([]model.CampaignCodes, 0, len(campaigns))

	for i, group := range flowcodes {
		if len(group) == 0 {
			continue // пустая кампания, запрос не отправляем
		}

		batch := model.BulkURLRequest{
			ClientID:     clientID,
			CampaignName: campaigns[i],
			URLs:         group,
		}
		if len(smartRules) > 0 {
			batch.SmartRules = smartRules
		}

		entries, err := s.API.CreateURLBatch(ctx, batch)
		if err != nil {
			if isConflict(err) {
				s.Logger.Warn("Часть URL кампании уже существует, пропускаем создание", zap.String("campaign", campaigns[i]))
				continue
			}
			return nil, err
		}

		codes := make([]model.GeneratedURL, 0, len(entries))
		for _, entry := range entries {
			if len(entry.Images) == 0 {
				return nil, fmt.Errorf("кампания %s: запись %s без изображений в ответе", campaigns[i], entry.ID)
			}
			codes = append(codes, model.GeneratedURL{ID: entry.ID, QRCode: entry.Images[0].URL})
		}

		results = append(results, model.CampaignCodes{Campaign: campaigns[i], Codes: codes})
	}
	return results, nil
}

// saveImages скачивает изображения и раскладывает их по папкам кампаний:
// <outputDir>/flowcode_images/<кампания>/<id>.svg.
func (s *FlowcodeService) saveImages(ctx context.Context, outputDir string, generated []model.CampaignCodes) error {
	rootDir := filepath.Join(outputDir, imagesDirName)
	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		if err := os.Mkdir(rootDir, 0o755); err != nil {
			return err
		}
	}

	for _, campaign := range generated {
		// Повторный запуск с той же кампанией завершается ошибкой.
		campaignDir := filepath.Join(rootDir, campaign.Campaign)
		if err := os.Mkdir(campaignDir, 0o755); err != nil {
			return err
		}

		for _, code := range campaign.Codes {
			data, err := s.API.DownloadImage(ctx, code.QRCode)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(campaignDir, code.ID+".svg"), data, 0o644); err != nil {
				return err
			}
		}

		s.Logger.Info("Изображения кампании сохранены",
			zap.String("campaign", campaign.Campaign),
			zap.Int("count", len(campaign.Codes)))
	}
	return nil
}

// isConflict сообщает, ответил ли сервис статусом 409.
func isConflict(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}
