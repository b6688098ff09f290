package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Auth   *Auth
	Debate *Debate
}

type Auth struct {
	JwtKey     string `json:"jwt_key"`
	DailyQuota int32  `json:"daily_quota"`
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Debate struct {
	Llm         *LLM         `json:"llm"`
	Enrich      *Enrich      `json:"enrich"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl        string `json:"base_url"`
	ApiKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int32  `json:"timeout_seconds"`
	MaxRetries     int32  `json:"max_retries"`
}

type Enrich struct {
	NewsProvider string   `json:"news_provider"`
	Tavily       *Tavily  `json:"tavily"`
	Searxng      *SearXNG `json:"searxng"`
	Timeout      int32    `json:"timeout"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
