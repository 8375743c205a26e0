package translation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/metrics"
)

// LanguageInfo describes one language the translator can target.
type LanguageInfo struct {
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Dir        string `json:"dir"`
}

// Languages fetches the set of translatable languages from the
// translator endpoint. The languages resource is public, so no
// subscription key is needed.
func (p *AzureProvider) Languages(ctx context.Context) (langs map[string]LanguageInfo, err error) {
	if p == nil {
		return nil, fault.New(fault.Configuration, "translation provider is not configured")
	}

	started := time.Now()
	defer func() {
		metrics.ObserveProvider(p.Name(), "languages", err, time.Since(started))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/languages?api-version="+azureAPIVersion+"&scope=translation", nil)
	if err != nil {
		return nil, fault.Wrap(fault.Transport, err, "build languages request")
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fault.Wrap(fault.Transport, err, "send languages request")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fault.Wrap(fault.Transport, err, "read languages response")
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, remoteFault(httpResp.StatusCode, respBody, "languages")
	}

	var parsed struct {
		Translation map[string]LanguageInfo `json:"translation"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fault.Wrap(fault.Remote, err, "decode languages response")
	}
	if len(parsed.Translation) == 0 {
		return nil, fault.New(fault.EmptyResult, "languages response was empty")
	}
	return parsed.Translation, nil
}
