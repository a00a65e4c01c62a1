package models

// SteamProfile - снимок профиля Steam, отдается виджету и
// сериализуется в файл-снапшот для фолбэка
type SteamProfile struct {
	Online      bool         `json:"online"`
	Username    string       `json:"username,omitempty"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
	ProfileURL  string       `json:"profile_url,omitempty"`
	Level       int          `json:"level"`
	Status      int          `json:"status"`
	RecentGames []SteamGame  `json:"recent_games"`
	Screenshots []Screenshot `json:"screenshots"`
	Error       string       `json:"error,omitempty"`
}

type SteamGame struct {
	Name           string            `json:"name"`
	AppID          int               `json:"appid"`
	Playtime2Weeks float64           `json:"playtime_2weeks"`
	PlaytimeTotal  float64           `json:"playtime_total"`
	IconURL        string            `json:"icon_url"`
	Achievements   SteamAchievements `json:"achievements"`
}

type SteamAchievements struct {
	Total      int `json:"total"`
	Achieved   int `json:"achieved"`
	Percentage int `json:"percentage"`
}

type Screenshot struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
}
