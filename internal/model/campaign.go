package model

// CampaignRequest представляет тело form-запроса на создание кампании.
type CampaignRequest struct {
	Name               string
	DisplayName        string
	ClientID           string
	ReservedURLsUnique bool
}
