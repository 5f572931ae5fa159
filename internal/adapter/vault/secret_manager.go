package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

func (sm *SecretManager) GetDatabaseCredentials() (string, error) {
	secret, err := sm.client.Logical().Read("secret/data/database")
	if err != nil {
		return "", err
	}

	data := secret.Data["data"].(map[string]interface{})
	return data["connection_string"].(string), nil
}

// GetAPIKey reads the api_key field stored under secret/data/<name>.
// Collaborator keys (openweather, newsapi, openai, ...) live there in
// deployments that keep credentials out of the environment.
func (sm *SecretManager) GetAPIKey(name string) (string, error) {
	secret, err := sm.client.Logical().Read("secret/data/" + name)
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Data["data"] == nil {
		return "", fmt.Errorf("secret %s not found", name)
	}

	data := secret.Data["data"].(map[string]interface{})
	key, ok := data["api_key"].(string)
	if !ok {
		return "", fmt.Errorf("secret %s has no api_key field", name)
	}
	return key, nil
}
