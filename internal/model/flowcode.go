package model

// URLRequest представляет одну запись в пакетном запросе на создание URL.
type URLRequest struct {
	ID      string `json:"id"`
	URLType string `json:"url_type"`
	URL     string `json:"url"`
}

// BulkURLRequest представляет тело пакетного запроса для одной кампании.
// SmartRules передаются как есть и опускаются целиком, если правил нет.
type BulkURLRequest struct {
	ClientID     string         `json:"client_id"`
	CampaignName string         `json:"campaign_name"`
	URLs         []URLRequest   `json:"urls"`
	SmartRules   map[string]any `json:"smart_rules,omitempty"`
}

// Image представляет один вариант изображения сгенерированного кода.
type Image struct {
	URL string `json:"url"`
}

// GeneratedEntry представляет одну запись в ответе на пакетный запрос.
type GeneratedEntry struct {
	ID     string  `json:"id"`
	Images []Image `json:"images"`
}

// GeneratedURL Внутренние структуры
type GeneratedURL struct {
	ID     string
	QRCode string
}

// CampaignCodes Внутренние структуры
type CampaignCodes struct {
	Campaign string
	Codes    []GeneratedURL
}
