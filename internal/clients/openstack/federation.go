/*
Copyright 2024 The SUNET Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
)

// Keystone's OS-FEDERATION resources have no typed gophercloud binding,
// so these operations build their requests directly against the identity
// service client, the same way AddProjectTag does for project tags.

func (c *client) fedURL(parts ...string) string {
	return c.identity.ServiceURL(append([]string{"OS-FEDERATION"}, parts...)...)
}

func (c *client) GetIdentityProvider(ctx context.Context, idpID string) (*IdentityProvider, error) {
	return call(ctx, c.limiter, "identity", "get_identity_provider", func(ctx context.Context) (*IdentityProvider, error) {
		var result struct {
			IdentityProvider struct {
				ID        string   `json:"id"`
				RemoteIDs []string `json:"remote_ids"`
				Enabled   bool     `json:"enabled"`
			} `json:"identity_provider"`
		}
		_, err := c.identity.Get(ctx, c.fedURL("identity_providers", idpID), &result, &gophercloud.RequestOpts{OkCodes: []int{200}})
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, classify(err)
		}
		return &IdentityProvider{ID: result.IdentityProvider.ID, RemoteIDs: result.IdentityProvider.RemoteIDs, Enabled: result.IdentityProvider.Enabled}, nil
	})
}

func (c *client) CreateIdentityProvider(ctx context.Context, idpID string, remoteIDs []string) (*IdentityProvider, error) {
	return call(ctx, c.limiter, "identity", "create_identity_provider", func(ctx context.Context) (*IdentityProvider, error) {
		body := map[string]interface{}{
			"identity_provider": map[string]interface{}{
				"remote_ids": remoteIDs,
				"enabled":    true,
			},
		}
		var result struct {
			IdentityProvider struct {
				ID        string   `json:"id"`
				RemoteIDs []string `json:"remote_ids"`
				Enabled   bool     `json:"enabled"`
			} `json:"identity_provider"`
		}
		_, err := c.identity.Put(ctx, c.fedURL("identity_providers", idpID), body, &result, &gophercloud.RequestOpts{OkCodes: []int{201}})
		if err != nil {
			return nil, classify(err)
		}
		return &IdentityProvider{ID: result.IdentityProvider.ID, RemoteIDs: result.IdentityProvider.RemoteIDs, Enabled: result.IdentityProvider.Enabled}, nil
	})
}

type mappingDocument struct {
	Mapping struct {
		ID    string        `json:"id"`
		Rules []MappingRule `json:"rules"`
	} `json:"mapping"`
}

func (c *client) GetMapping(ctx context.Context, mappingID string) (*Mapping, error) {
	return call(ctx, c.limiter, "identity", "get_mapping", func(ctx context.Context) (*Mapping, error) {
		var result mappingDocument
		_, err := c.identity.Get(ctx, c.fedURL("mappings", mappingID), &result, &gophercloud.RequestOpts{OkCodes: []int{200}})
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, classify(err)
		}
		return &Mapping{ID: result.Mapping.ID, Rules: result.Mapping.Rules}, nil
	})
}

func (c *client) CreateMapping(ctx context.Context, mappingID string, rules []MappingRule) (*Mapping, error) {
	return call(ctx, c.limiter, "identity", "create_mapping", func(ctx context.Context) (*Mapping, error) {
		body := map[string]interface{}{"mapping": map[string]interface{}{"rules": rules}}
		var result mappingDocument
		_, err := c.identity.Put(ctx, c.fedURL("mappings", mappingID), body, &result, &gophercloud.RequestOpts{OkCodes: []int{201}})
		if err != nil {
			return nil, classify(err)
		}
		return &Mapping{ID: result.Mapping.ID, Rules: result.Mapping.Rules}, nil
	})
}

func (c *client) UpdateMapping(ctx context.Context, mappingID string, rules []MappingRule) (*Mapping, error) {
	return call(ctx, c.limiter, "identity", "update_mapping", func(ctx context.Context) (*Mapping, error) {
		body := map[string]interface{}{"mapping": map[string]interface{}{"rules": rules}}
		var result mappingDocument
		_, err := c.identity.Patch(ctx, c.fedURL("mappings", mappingID), body, &result, &gophercloud.RequestOpts{OkCodes: []int{200}})
		if err != nil {
			return nil, classify(err)
		}
		return &Mapping{ID: result.Mapping.ID, Rules: result.Mapping.Rules}, nil
	})
}

type protocolDocument struct {
	Protocol struct {
		ID        string `json:"id"`
		MappingID string `json:"mapping_id"`
	} `json:"protocol"`
}

func (c *client) GetFederationProtocol(ctx context.Context, idpID, protocolID string) (*FederationProtocol, error) {
	return call(ctx, c.limiter, "identity", "get_federation_protocol", func(ctx context.Context) (*FederationProtocol, error) {
		var result protocolDocument
		_, err := c.identity.Get(ctx, c.fedURL("identity_providers", idpID, "protocols", protocolID), &result, &gophercloud.RequestOpts{OkCodes: []int{200}})
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, classify(err)
		}
		return &FederationProtocol{ID: result.Protocol.ID, IdPID: idpID, MappingID: result.Protocol.MappingID}, nil
	})
}

func (c *client) CreateFederationProtocol(ctx context.Context, idpID, protocolID, mappingID string) (*FederationProtocol, error) {
	return call(ctx, c.limiter, "identity", "create_federation_protocol", func(ctx context.Context) (*FederationProtocol, error) {
		body := map[string]interface{}{"protocol": map[string]interface{}{"mapping_id": mappingID}}
		var result protocolDocument
		_, err := c.identity.Put(ctx, c.fedURL("identity_providers", idpID, "protocols", protocolID), body, &result, &gophercloud.RequestOpts{OkCodes: []int{201}})
		if err != nil {
			return nil, classify(err)
		}
		return &FederationProtocol{ID: result.Protocol.ID, IdPID: idpID, MappingID: result.Protocol.MappingID}, nil
	})
}
