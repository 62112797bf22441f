package crawler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gridfeed/internal/config"
)

// Default provider endpoints. Providers that block foreign traffic are
// fronted by a passthrough proxy that forwards the path to the real host.
const (
	USProxy = "https://us-ca-proxy-jfnx5klx2a-uw.a.run.app"

	CaisoHost           = "https://www.caiso.com"
	CaisoFuelSourcePath = "outlook/SP/fuelsource.csv"
	CaisoNetDemandPath  = "outlook/SP/netdemand.csv"

	HydroQuebecHost            = "https://hydroquebec.com"
	HydroQuebecProductionPath  = "data/documents-donnees/donnees-ouvertes/json/production.json"
	HydroQuebecConsumptionPath = "data/documents-donnees/donnees-ouvertes/json/demande.json"

	CenaceExchangeURL = "http://www.cenace.gob.mx/Paginas/Publicas/Info/DemandaRegional.aspx"
)

// Endpoint resolution errors.
var (
	ErrNoDefaultEndpoint    = errors.New("no built-in endpoint for source")
	ErrNoHistoricalEndpoint = errors.New("provider publishes no dated history")
)

// ProxyURL builds the proxied provider URL: {proxy}/{path}?host={host}.
func ProxyURL(proxy, path, host string) string {
	return fmt.Sprintf("%s/%s?host=%s",
		strings.TrimSuffix(proxy, "/"),
		strings.TrimPrefix(path, "/"),
		host,
	)
}

// HistoryPath returns the dated historical variant of a CAISO outlook
// file, e.g. outlook/SP/History/20200120/fuelsource.csv.
func HistoryPath(day time.Time, file string) string {
	return fmt.Sprintf("outlook/SP/History/%s/%s", day.Format("20060102"), file)
}

// Endpoint resolves the fetch URL for a remote source. An explicit url in
// the source wins; otherwise the provider's built-in endpoint for the data
// kind is used.
func Endpoint(src config.SourceConfig) (string, error) {
	if src.URL != "" {
		return src.URL, nil
	}

	switch src.Provider {
	case config.ProviderCaiso:
		switch src.Kind {
		case config.KindProduction:
			return ProxyURL(USProxy, CaisoFuelSourcePath, CaisoHost), nil
		case config.KindConsumption, config.KindExchange:
			// Current demand and the imports column share the demand table.
			return ProxyURL(USProxy, CaisoNetDemandPath, CaisoHost), nil
		}
	case config.ProviderHydroQuebec:
		switch src.Kind {
		case config.KindProduction:
			return ProxyURL(USProxy, HydroQuebecProductionPath, HydroQuebecHost), nil
		case config.KindConsumption:
			return ProxyURL(USProxy, HydroQuebecConsumptionPath, HydroQuebecHost), nil
		}
	case config.ProviderCenace:
		if src.Kind == config.KindExchange {
			return CenaceExchangeURL, nil
		}
	}

	return "", fmt.Errorf("%w: %s %s", ErrNoDefaultEndpoint, src.Provider, src.Kind)
}

// HistoricalEndpoint resolves the dated snapshot URL for a past day. Only
// the CAISO outlook publishes per-day history.
func HistoricalEndpoint(src config.SourceConfig, day time.Time) (string, error) {
	if src.Provider != config.ProviderCaiso {
		return "", fmt.Errorf("%w: %s", ErrNoHistoricalEndpoint, src.Provider)
	}

	switch src.Kind {
	case config.KindProduction:
		return ProxyURL(USProxy, HistoryPath(day, "fuelsource.csv"), CaisoHost), nil
	case config.KindConsumption, config.KindExchange:
		return ProxyURL(USProxy, HistoryPath(day, "netdemand.csv"), CaisoHost), nil
	}

	return "", fmt.Errorf("%w: %s %s", ErrNoHistoricalEndpoint, src.Provider, src.Kind)
}
