package gemini

// apiRequest is the generateContent request body.
type apiRequest struct {
	Contents         []apiContent        `json:"contents"`
	GenerationConfig apiGenerationConfig `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

// apiGenerationConfig asks the endpoint to emit JSON directly.
type apiGenerationConfig struct {
	ResponseMIMEType string `json:"response_mime_type"`
}

// apiResponse is the subset of the generateContent response we read.
type apiResponse struct {
	Candidates []struct {
		Content apiContent `json:"content"`
	} `json:"candidates"`
}

// text returns the first part of the first candidate, or "".
func (r apiResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}
