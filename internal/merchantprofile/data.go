// internal/merchantprofile/data.go
// Package merchantprofile caches the merchant profile hash that the message
// endpoint uses to pre-resolve merchant configuration. The hash is governed by
// two TTLs: past the soft TTL the cached value is still served while a
// background refresh runs; past the hard TTL the cache blocks on a refetch.
package merchantprofile

import (
	"encoding/json"
	"fmt"
	"time"
)

// Profile is a cached merchant profile entry.
type Profile struct {
	Hash       string
	HardExpiry time.Time
	SoftExpiry time.Time
	Disabled   bool
}

// HardExpired reports whether the entry is past its hard TTL and must not be
// served without a refetch.
func (p Profile) HardExpired(now time.Time) bool {
	return !now.Before(p.HardExpiry)
}

// SoftExpired reports whether the entry is past its soft TTL and should be
// refreshed in the background while still being served.
func (p Profile) SoftExpired(now time.Time) bool {
	return !now.Before(p.SoftExpiry)
}

// wireProfile matches the upstream and on-disk layout. TTLs come back from
// the service as integer seconds-from-now but persist as absolute timestamps,
// so decode accepts both forms and encode always writes timestamps.
type wireProfile struct {
	MerchantProfile struct {
		Hash string `json:"hash"`
	} `json:"merchant_profile"`
	TTLHard  json.RawMessage `json:"ttl_hard"`
	TTLSoft  json.RawMessage `json:"ttl_soft"`
	Disabled bool            `json:"cache_flow_disabled"`
}

// DecodeProfile parses a profile blob. The reference time anchors
// seconds-from-now TTLs; pass time.Now() outside tests.
func DecodeProfile(data []byte, now time.Time) (Profile, error) {
	var wire wireProfile
	if err := json.Unmarshal(data, &wire); err != nil {
		return Profile{}, fmt.Errorf("decode merchant profile: %w", err)
	}

	hard, err := decodeTTL(wire.TTLHard, now)
	if err != nil {
		return Profile{}, fmt.Errorf("decode ttl_hard: %w", err)
	}
	soft, err := decodeTTL(wire.TTLSoft, now)
	if err != nil {
		return Profile{}, fmt.Errorf("decode ttl_soft: %w", err)
	}

	return Profile{
		Hash:       wire.MerchantProfile.Hash,
		HardExpiry: hard,
		SoftExpiry: soft,
		Disabled:   wire.Disabled,
	}, nil
}

// EncodeProfile renders a profile entry for persistence with absolute
// RFC3339 expiry timestamps.
func EncodeProfile(p Profile) ([]byte, error) {
	var wire wireProfile
	wire.MerchantProfile.Hash = p.Hash
	wire.Disabled = p.Disabled

	hard, err := json.Marshal(p.HardExpiry.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	soft, err := json.Marshal(p.SoftExpiry.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	wire.TTLHard = hard
	wire.TTLSoft = soft

	return json.Marshal(wire)
}

func decodeTTL(raw json.RawMessage, now time.Time) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, fmt.Errorf("missing ttl")
	}

	var seconds int64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return now.Add(time.Duration(seconds) * time.Second), nil
	}

	var stamp string
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return time.Time{}, fmt.Errorf("ttl is neither seconds nor timestamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ttl timestamp: %w", err)
	}
	return t, nil
}
