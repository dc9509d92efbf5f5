package chatstream

// Engine describes one selectable backend in the built-in catalog.
type Engine struct {
	ID          string
	DisplayName string
	adapter     Adapter
}

// Adapter returns the engine's vendor adapter.
func (e *Engine) Adapter() Adapter { return e.adapter }

// NewSession creates a session bound to this engine's adapter.
func (e *Engine) NewSession(opts ...SessionOption) *Session {
	return NewSession(e.adapter, opts...)
}

// engines is the built-in engine catalog: six engines over three wire
// variants. The OpenAI-compatible look-alikes differ only in endpoint,
// default model and credential.
var engines = []Engine{
	{
		ID: "chatgpt", DisplayName: "ChatGPT",
		adapter: NewOpenAICompatAdapter("chatgpt", VendorConfig{
			Endpoint: "https://api.openai.com/v1",
			Model:    "gpt-4o-mini",
		}),
	},
	{
		ID: "deepseek", DisplayName: "DeepSeek",
		adapter: NewOpenAICompatAdapter("deepseek", VendorConfig{
			Endpoint: "https://api.deepseek.com/v1",
			Model:    "deepseek-chat",
		}),
	},
	{
		ID: "moonshot", DisplayName: "Moonshot Kimi",
		adapter: NewOpenAICompatAdapter("moonshot", VendorConfig{
			Endpoint: "https://api.moonshot.cn/v1",
			Model:    "moonshot-v1-8k",
		}),
	},
	{
		ID: "chatglm", DisplayName: "ChatGLM",
		adapter: NewOpenAICompatAdapter("chatglm", VendorConfig{
			Endpoint: "https://open.bigmodel.cn/api/paas/v4",
			Model:    "glm-4-flash",
		}),
	},
	{
		ID: "ernie", DisplayName: "ERNIE Bot",
		adapter: NewErnieAdapter(VendorConfig{
			Endpoint: "https://aip.baidubce.com/rpc/2.0/ai_custom/v1/wenxinworkshop/chat/ernie_bot_8k",
		}),
	},
	{
		ID: "gemini", DisplayName: "Gemini",
		adapter: NewGeminiAdapter(VendorConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-pro",
		}),
	},
}

// SelectEngine returns the catalog entry for an engine identifier, or nil if
// unknown. Callers surface "engine doesn't exist" to the user themselves.
func SelectEngine(id string) *Engine {
	for i := range engines {
		if engines[i].ID == id {
			return &engines[i]
		}
	}
	return nil
}

// Engines returns a copy of the built-in engine catalog.
func Engines() []Engine {
	result := make([]Engine, len(engines))
	copy(result, engines)
	return result
}
