package component

// Cosmetic-adjacent components. The simulation persists and broadcasts these
// but never reads them; they exist for client-side presentation.

type AnomalyVisualCue struct {
	CueType   string  `json:"cue_type"`
	Intensity float64 `json:"intensity"`
}

type LODPriority struct {
	Priority int `json:"priority"`
}

type WarpProfile struct {
	EntryEffect string  `json:"entry_effect"`
	ExitEffect  string  `json:"exit_effect"`
	TunnelHue   float64 `json:"tunnel_hue"`
}

type WarpVisual struct {
	Active   bool    `json:"active"`
	Progress float64 `json:"progress"`
}

type WarpEvent struct {
	LastEvent  string  `json:"last_event"`
	AtProgress float64 `json:"at_progress"`
}

type TacticalProjection struct {
	ProjectedX float64 `json:"projected_x"`
	ProjectedY float64 `json:"projected_y"`
	ProjectedZ float64 `json:"projected_z"`
	Horizon    float64 `json:"horizon"`
}

type PlayerPresence struct {
	Online      bool    `json:"online"`
	IdleSeconds float64 `json:"idle_seconds"`
}
