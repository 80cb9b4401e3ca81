package config

import (
	"flag"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config хранит параметры запуска генератора флоукодов
type Config struct {
	APIBaseURL       string `json:"api_base_url"`
	ClientID         string `json:"client_id"`
	DatasetPath      string `json:"dataset_path"`
	IDColumn         string `json:"id_column"`
	CampaignColumn   string `json:"campaign_column"`
	RedirectURL      string `json:"redirect_url"`
	OutputDir        string `json:"output_dir"`
	SmartRulesPath   string `json:"smart_rules_path"`
	PassIDAsArgument bool   `json:"pass_id_as_argument"`
}

// NewConfig инициализирует конфигурацию на основе окружения и аргументов командной строки
func NewConfig() *Config {

	viper.SetDefault("API_BASE_URL", "https://api.flowcode.com") // Значения по умолчанию
	viper.SetDefault("CLIENT_ID", "")
	viper.SetDefault("DATASET_PATH", "")
	viper.SetDefault("ID_COLUMN", "")
	viper.SetDefault("CAMPAIGN_COLUMN", "")
	viper.SetDefault("REDIRECT_URL", "")
	viper.SetDefault("OUTPUT_DIR", "")
	viper.SetDefault("SMART_RULES_PATH", "")
	viper.SetDefault("PASS_ID_AS_ARGUMENT", true)

	viper.AutomaticEnv()

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // Ошибку игнорируем, если файла нет

	// Определяем флаги, но НЕ задаем в них значения по умолчанию
	apiBaseURL := flag.String("a", "", "flowcode API base URL")
	clientID := flag.String("c", "", "client id (UUID)")
	datasetPath := flag.String("f", "", "path to CSV dataset")
	idColumn := flag.String("i", "", "id column name")
	campaignColumn := flag.String("g", "", "campaign column name")
	redirectURL := flag.String("r", "", "redirect URL for generated codes")
	outputDir := flag.String("o", "", "output directory for images")
	smartRulesPath := flag.String("s", "", "path to smart rules JSON file")
	noIDArgument := flag.Bool("n", false, "do not append object id to redirect URL")

	flag.Parse()

	cfg := &Config{
		APIBaseURL:       viper.GetString("API_BASE_URL"),
		ClientID:         viper.GetString("CLIENT_ID"),
		DatasetPath:      viper.GetString("DATASET_PATH"),
		IDColumn:         viper.GetString("ID_COLUMN"),
		CampaignColumn:   viper.GetString("CAMPAIGN_COLUMN"),
		RedirectURL:      viper.GetString("REDIRECT_URL"),
		OutputDir:        viper.GetString("OUTPUT_DIR"),
		SmartRulesPath:   viper.GetString("SMART_RULES_PATH"),
		PassIDAsArgument: viper.GetBool("PASS_ID_AS_ARGUMENT"),
	}

	// Если флаг передан, но переменной окружения нет — используем флаг
	if *apiBaseURL != "" {
		cfg.APIBaseURL = *apiBaseURL
	}
	if *clientID != "" {
		cfg.ClientID = *clientID
	}
	if *datasetPath != "" {
		cfg.DatasetPath = *datasetPath
	}
	if *idColumn != "" {
		cfg.IDColumn = *idColumn
	}
	if *campaignColumn != "" {
		cfg.CampaignColumn = *campaignColumn
	}
	if *redirectURL != "" {
		cfg.RedirectURL = *redirectURL
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *smartRulesPath != "" {
		cfg.SmartRulesPath = *smartRulesPath
	}
	if *noIDArgument {
		cfg.PassIDAsArgument = false
	}

	log.Printf("Инициализация конфигурации: APIBaseURL=%s", cfg.APIBaseURL)
	log.Printf("Инициализация конфигурации: DatasetPath=%s", cfg.DatasetPath)
	log.Printf("Инициализация конфигурации: IDColumn=%s", cfg.IDColumn)
	log.Printf("Инициализация конфигурации: CampaignColumn=%s", cfg.CampaignColumn)
	log.Printf("Инициализация конфигурации: RedirectURL=%s", cfg.RedirectURL)
	log.Printf("Инициализация конфигурации: OutputDir=%s", cfg.OutputDir)
	log.Printf("Инициализация конфигурации: PassIDAsArgument=%v", cfg.PassIDAsArgument)

	return cfg
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ClientID == "" {
		return fmt.Errorf("идентификатор клиента не может быть пустым")
	}
	if cfg.DatasetPath == "" {
		return fmt.Errorf("путь к CSV-файлу не может быть пустым")
	}
	if cfg.IDColumn == "" {
		return fmt.Errorf("имя колонки идентификаторов не может быть пустым")
	}
	if cfg.CampaignColumn == "" {
		return fmt.Errorf("имя колонки кампаний не может быть пустым")
	}
	if cfg.RedirectURL == "" {
		return fmt.Errorf("целевой URL не может быть пустым")
	}
	return nil
}
