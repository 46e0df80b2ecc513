package result

import (
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot values a strategy's holdings, LP included, in X at the midpoint.
type Snapshot struct {
	Timestamp int    `json:"timestamp"`
	AmountX   string `json:"amountX"`
	AmountY   string `json:"amountY"`
	ValueX    string `json:"valueX"`
	Price     string `json:"price"`
}

// Outcome records one replayed transaction or rebalance.
type Outcome struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int    `json:"timestamp"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	AmountX   string `json:"amountX,omitempty"`
	AmountY   string `json:"amountY,omitempty"`
	LP        string `json:"lp,omitempty"`
}

type RunResult struct {
	Strategy   string     `json:"strategy"`
	StartValue string     `json:"start_value"`
	EndValue   string     `json:"end_value"`
	Return     string     `json:"return"`
	Volatility string     `json:"volatility"`
	Failed     int        `json:"failed"`
	Outcomes   []Outcome  `json:"outcomes"`
	Snapshots  []Snapshot `json:"snapshots"`
}

type Save struct {
	Pool           string      `json:"pool"`
	UpdateInterval int         `json:"update_interval"`
	StartAmountX   string      `json:"start_amount_x"`
	StartAmountY   string      `json:"start_amount_y"`
	StartTime      int         `json:"start_time"`
	EndTime        int         `json:"end_time"`
	Results        []RunResult `json:"results"`
}

func (s *Save) Write(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func Read(path string) (*Save, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Save
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
