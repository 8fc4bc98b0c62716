package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"
)

// PreviewTTL is the lifetime of each preview credential. Credentials are
// never renewed or extended.
const PreviewTTL = 60 * time.Second

// Preview delivery modes. decrypted_memory_stream signals that decryption
// happens only transiently in memory and plaintext is never written to disk.
const (
	PreviewModeDecryptedMemory = "decrypted_memory_stream"
	PreviewModeDirect          = "direct_stream"
)

// TokenGrant is the response to a preview-token request.
type TokenGrant struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Encrypted bool      `json:"encrypted"`
}

// PreviewDescriptor is the response to a token redemption. StreamURL carries
// the ticket for the final stream step.
type PreviewDescriptor struct {
	Ticket    string    `json:"ticket"`
	Mode      string    `json:"mode"`
	StreamURL string    `json:"streamUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PreviewStream is a one-shot handle to an asset's plaintext bytes.
type PreviewStream struct {
	Asset  BackupAsset
	Reader io.ReadCloser
	Size   int64
}

// PreviewService runs the issue → redeem → stream credential chain that
// gates access to a specific asset's decrypted bytes. Token and ticket maps
// live in process memory only.
type PreviewService struct {
	state    StateStore
	storages StorageFactory
	cipher   Cipher
	logger   Logger
	clock    Clock
	idgen    IDGenerator

	tokens  *credentialStore
	tickets *credentialStore
}

// NewPreviewService wires a PreviewService.
func NewPreviewService(state StateStore, storages StorageFactory, cipher Cipher, logger Logger, clock Clock, idgen IDGenerator) *PreviewService {
	return &PreviewService{
		state:    state,
		storages: storages,
		cipher:   cipher,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		tokens:   newCredentialStore(),
		tickets:  newCredentialStore(),
	}
}

// IssueToken mints a single-use preview token for an existing asset.
func (p *PreviewService) IssueToken(assetID string) (*TokenGrant, error) {
	asset, err := p.findAsset(assetID)
	if err != nil {
		return nil, err
	}

	token := p.idgen.New()
	expiresAt := p.clock.Now().Add(PreviewTTL)
	p.tokens.put(token, assetID, expiresAt)

	p.logger.Debug("preview token issued", "asset", assetID)
	return &TokenGrant{
		Token:     token,
		ExpiresAt: expiresAt,
		Encrypted: asset.Encrypted,
	}, nil
}

// RedeemToken consumes a preview token and mints a stream ticket bound to the
// same asset with a fresh deadline. The token is consumed even when the
// redemption fails further down; replay always gets ErrTokenInvalidOrExpired.
func (p *PreviewService) RedeemToken(token, assetID string) (*PreviewDescriptor, error) {
	if !p.tokens.take(token, assetID, p.clock.Now()) {
		return nil, ErrTokenInvalidOrExpired
	}

	asset, err := p.findAsset(assetID)
	if err != nil {
		return nil, err
	}

	ticket := p.idgen.New()
	expiresAt := p.clock.Now().Add(PreviewTTL)
	p.tickets.put(ticket, assetID, expiresAt)

	mode := PreviewModeDirect
	if asset.Encrypted {
		mode = PreviewModeDecryptedMemory
	}

	p.logger.Debug("preview token redeemed", "asset", assetID, "mode", mode)
	return &PreviewDescriptor{
		Ticket:    ticket,
		Mode:      mode,
		StreamURL: fmt.Sprintf("/api/v1/preview/stream?asset=%s&ticket=%s", url.QueryEscape(assetID), url.QueryEscape(ticket)),
		ExpiresAt: expiresAt,
	}, nil
}

// OpenStream consumes a stream ticket and returns a one-shot handle to the
// asset's plaintext. Encrypted assets are decrypted in memory; plaintext is
// never written to disk.
func (p *PreviewService) OpenStream(ctx context.Context, ticket, assetID string) (*PreviewStream, error) {
	if !p.tickets.take(ticket, assetID, p.clock.Now()) {
		return nil, ErrTokenInvalidOrExpired
	}

	asset, err := p.findAsset(assetID)
	if err != nil {
		return nil, err
	}

	state, err := p.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	target := state.FindStorage(asset.StorageTargetID)
	if target == nil {
		return nil, ErrStorageNotFound
	}

	adapter, err := p.storages.ForTarget(*target)
	if err != nil {
		return nil, fmt.Errorf("creating storage adapter: %w", err)
	}

	data, err := adapter.ReadFile(ctx, asset.Name)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", asset.ID, err)
	}

	if asset.Encrypted {
		data, err = p.cipher.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("decrypting asset %s: %w", asset.ID, err)
		}
	}

	p.logger.Info("preview stream opened", "asset", assetID, "bytes", len(data))
	return &PreviewStream{
		Asset:  *asset,
		Reader: io.NopCloser(bytes.NewReader(data)),
		Size:   int64(len(data)),
	}, nil
}

func (p *PreviewService) findAsset(assetID string) (*BackupAsset, error) {
	state, err := p.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	asset := state.FindAsset(assetID)
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}
