package genai

// Model describes one selectable generative model.
type Model struct {
	ID           string
	Name         string
	Description  string
	IsImageModel bool
}

// DefaultModelID is the model used for new chat sessions.
const DefaultModelID = "gemini-2.0-flash"

// Models lists the models offered in the assistant's model selector.
var Models = []Model{
	{ID: "gemini-2.5-pro-preview-06-05", Name: "Gemini 2.5 Pro", Description: "Modelo mais avançado para tarefas complexas"},
	{ID: "gemini-2.5-flash-preview-05-20", Name: "Gemini 2.5 Flash", Description: "Rápido e eficiente para uso geral"},
	{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Description: "Velocidade otimizada"},
	{ID: "gemini-2.0-flash-lite", Name: "Gemini 2.0 Flash Lite", Description: "Versão leve e rápida"},
	{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro", Description: "Alto desempenho geral"},
	{ID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash", Description: "Respostas rápidas"},
	{ID: "imagen-3.0-generate-002", Name: "Imagen 3", Description: "Geração de imagens de alta qualidade", IsImageModel: true},
}

// KnownModel reports whether the given model id is in the selector list.
func KnownModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// IsImageModel reports whether the given model id produces images.
func IsImageModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return m.IsImageModel
		}
	}
	return false
}
