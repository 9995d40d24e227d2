package adquery

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Binary SID layout: 1-byte revision, 1-byte sub-authority count N, 6-byte
// big-endian identifier authority, then exactly N 4-byte little-endian
// sub-authorities.
const (
	sidHeaderLen           = 8
	sidSubAuthorityLen     = 4
	maxIdentifierAuthority = 1<<48 - 1
)

// SIDToString converts a binary security identifier to its SDDL textual
// form "S-<revision>-<authority>-<sub1>-...-<subN>". The input must account
// for every byte: fewer than N sub-authorities or trailing bytes beyond the
// Nth are an ErrMalformedSID, not silently ignored.
func SIDToString(sid []byte) (string, error) {
	if len(sid) < sidHeaderLen {
		return "", fmt.Errorf("%w: %d bytes, want at least %d", ErrMalformedSID, len(sid), sidHeaderLen)
	}
	revision := sid[0]
	count := int(sid[1])
	if want := sidHeaderLen + count*sidSubAuthorityLen; len(sid) != want {
		return "", fmt.Errorf("%w: %d bytes for %d sub-authorities, want %d",
			ErrMalformedSID, len(sid), count, want)
	}

	var b strings.Builder
	b.WriteString("S-")
	b.WriteString(strconv.FormatUint(uint64(revision), 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatUint(authorityFromBytes(sid[2:sidHeaderLen]), 10))
	for i := 0; i < count; i++ {
		off := sidHeaderLen + i*sidSubAuthorityLen
		sub := binary.LittleEndian.Uint32(sid[off : off+sidSubAuthorityLen])
		b.WriteByte('-')
		b.WriteString(strconv.FormatUint(uint64(sub), 10))
	}
	return b.String(), nil
}

// SIDFromString converts an SDDL security identifier back to its binary
// form. It is the exact inverse of SIDToString: for every well-formed binary
// SID b, SIDFromString(SIDToString(b)) reproduces b byte for byte.
func SIDFromString(s string) ([]byte, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 || parts[0] != "S" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSIDString, s)
	}
	revision, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: revision %q", ErrInvalidSIDString, parts[1])
	}
	authority, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil || authority > maxIdentifierAuthority {
		return nil, fmt.Errorf("%w: identifier authority %q", ErrInvalidSIDString, parts[2])
	}
	subs := parts[3:]
	if len(subs) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d sub-authorities", ErrInvalidSIDString, len(subs))
	}

	out := make([]byte, sidHeaderLen, sidHeaderLen+len(subs)*sidSubAuthorityLen)
	out[0] = byte(revision)
	out[1] = byte(len(subs))
	putAuthority(out[2:sidHeaderLen], authority)
	for _, seg := range subs {
		sub, err := strconv.ParseUint(seg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sub-authority %q", ErrInvalidSIDString, seg)
		}
		if sub > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %s", ErrSubAuthorityOverflow, seg)
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(sub))
	}
	return out, nil
}

// authorityFromBytes reads the 6-byte big-endian identifier authority.
func authorityFromBytes(b []byte) uint64 {
	var buf [8]byte
	copy(buf[2:], b)
	return binary.BigEndian.Uint64(buf[:])
}

// putAuthority writes the identifier authority as 6 big-endian bytes.
func putAuthority(dst []byte, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	copy(dst, buf[2:])
}
