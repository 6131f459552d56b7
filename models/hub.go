package models

// HubState is the smart-home hub mirror managed through the viewHub and
// updateHub tools.
type HubState struct {
	Climate HubClimate `json:"climate"`
	Lights  []HubLight `json:"lights"`
	Locks   []HubLock  `json:"locks"`
}

type HubClimate struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type HubLight struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

type HubLock struct {
	Name     string `json:"name"`
	IsLocked bool   `json:"isLocked"`
}
