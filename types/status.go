package types

type ServerStatus struct {
	Status       string   `json:"status"`
	AppVersion   string   `json:"appVersion"`
	UptimeSec    int64    `json:"uptimeSec"`
	CacheAdapter string   `json:"cacheAdapter"`
	Providers    []string `json:"providers"`
	TotalTokens  int      `json:"totalTokens"`
}
