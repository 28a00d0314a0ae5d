// Package client is the storefront's client-side cart and wishlist state.
// Local state is authoritative for rendering; the server is a best-effort
// mirror synchronized through a Syncer when a session token is present.
package client

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
)

type refKind int

const (
	refLocal refKind = iota
	refRemote
)

// ProductRef identifies a product in one of two identifier spaces. Remote
// refs are 24-character hex document ids addressable on the server. Local
// refs are synthetic integers for statically seeded catalog entries with no
// server record; they never leave the client.
type ProductRef struct {
	kind   refKind
	local  int
	remote string
}

// LocalRef makes a ref for a locally seeded product.
func LocalRef(id int) ProductRef {
	return ProductRef{kind: refLocal, local: id}
}

// RemoteRef makes a server-addressable ref, rejecting anything that is not
// a 24-character hex id.
func RemoteRef(hex string) (ProductRef, error) {
	if !isHexObjectID(hex) {
		return ProductRef{}, fmt.Errorf("not a server-addressable id: %q", hex)
	}
	return ProductRef{kind: refRemote, remote: hex}, nil
}

// ParseRef classifies a raw identifier: an exact 24-character hex string is
// remote, everything else is local. Numeric strings keep their value; other
// strings map to a stable hashed id so distinct keys never alias.
func ParseRef(raw string) ProductRef {
	if isHexObjectID(raw) {
		return ProductRef{kind: refRemote, remote: raw}
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return ProductRef{kind: refLocal, local: n}
	}
	h := fnv.New32a()
	h.Write([]byte(raw))
	return ProductRef{kind: refLocal, local: int(h.Sum32())}
}

// IsRemote reports whether the ref may be sent to the server.
func (r ProductRef) IsRemote() bool { return r.kind == refRemote }

// Remote returns the hex id; empty for local refs.
func (r ProductRef) Remote() string { return r.remote }

// Local returns the synthetic id; zero for remote refs.
func (r ProductRef) Local() int { return r.local }

func (r ProductRef) String() string {
	if r.kind == refRemote {
		return r.remote
	}
	return strconv.Itoa(r.local)
}

// MarshalJSON keeps the original on-disk shape: local refs are numbers,
// remote refs are hex strings.
func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.kind == refRemote {
		return json.Marshal(r.remote)
	}
	return json.Marshal(r.local)
}

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = LocalRef(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRef(s)
	return nil
}

func isHexObjectID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
