package responses

type AccessDecision struct {
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId,omitempty"`
	Operation    string `json:"operation"`
	Allow        bool   `json:"allow"`
	Reason       string `json:"reason"`
}

type AccessDecisionItem struct {
	Index      int    `json:"index"`
	ResourceID string `json:"resourceId,omitempty"`
	Allow      bool   `json:"allow"`
	Reason     string `json:"reason"`
	Error      string `json:"error,omitempty"`
}

type AccessDecisionBatch struct {
	ResourceType string               `json:"resourceType"`
	Operation    string               `json:"operation"`
	Allowed      int                  `json:"allowed"`
	Denied       int                  `json:"denied"`
	Items        []AccessDecisionItem `json:"items"`
}
