package app

import (
	"horse.fit/gist/internal/completion"
	"horse.fit/gist/internal/config"
	"horse.fit/gist/internal/translation"
)

func newAzureProvider(cfg *config.Config) *translation.AzureProvider {
	return translation.NewAzureProvider(translation.AzureOptions{
		Key:      cfg.TranslatorKey,
		Region:   cfg.TranslatorRegion,
		Endpoint: cfg.TranslatorEndpoint,
	})
}

// newRegistry registers every configured provider. Azure is the default
// unless TRANSLATION_PROVIDER selects another.
func newRegistry(azure *translation.AzureProvider) *translation.Registry {
	return translation.NewRegistryFromEnv(azure, translation.NewLocalProviderFromEnv())
}

func newCompletionClient(cfg *config.Config) *completion.Client {
	return completion.NewClient(completion.Options{
		Key:        cfg.OpenAIKey,
		Endpoint:   cfg.OpenAIEndpoint,
		Deployment: cfg.OpenAIDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		Timeout:    cfg.CompletionTimeout,
	})
}
