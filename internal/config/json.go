package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		File struct {
			Path string `json:"path"`
		} `json:"file,omitempty"`

		CalDAV struct {
			URL          string `json:"url"`
			Username     string `json:"username"`
			Password     string `json:"password"`
			CalendarName string `json:"calendar_name"`
		} `json:"caldav,omitempty"`
	} `json:"storage,omitempty"`

	Advisor struct {
		BaseURL string   `json:"base_url"`
		Model   string   `json:"model"`
		APIKey  string   `json:"api_key"`
		Timeout Duration `json:"timeout"`
	} `json:"advisor,omitempty"`

	Notify struct {
		PushGatewayURL string   `json:"push_gateway_url"`
		Timeout        Duration `json:"timeout"`
		DigestTime     string   `json:"digest_time"`
		Timezone       string   `json:"timezone"`
	} `json:"notify,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			File: File{
				Path: jsonCfg.Storage.File.Path,
			},
			CalDAV: CalDAV{
				URL:          jsonCfg.Storage.CalDAV.URL,
				Username:     jsonCfg.Storage.CalDAV.Username,
				Password:     jsonCfg.Storage.CalDAV.Password,
				CalendarName: jsonCfg.Storage.CalDAV.CalendarName,
			},
		},
		Advisor: Advisor{
			BaseURL: jsonCfg.Advisor.BaseURL,
			Model:   jsonCfg.Advisor.Model,
			APIKey:  jsonCfg.Advisor.APIKey,
			Timeout: time.Duration(jsonCfg.Advisor.Timeout),
		},
		Notify: Notify{
			PushGatewayURL: jsonCfg.Notify.PushGatewayURL,
			Timeout:        time.Duration(jsonCfg.Notify.Timeout),
			DigestTime:     jsonCfg.Notify.DigestTime,
			Timezone:       jsonCfg.Notify.Timezone,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
