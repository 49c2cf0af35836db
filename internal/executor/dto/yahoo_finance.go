package dto

import "time"

// GetBarsParam selects the Yahoo chart range and interval to fetch.
type GetBarsParam struct {
	Ticker   string
	Range    string
	Interval string
}

// Bar is one normalised hourly observation.
type Bar struct {
	Timestamp time.Time
	Close     float64
	Volume    int64
}

// YahooChartResponse is the subset of the v8 chart endpoint we read.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
