package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestU2RoundTrip(t *testing.T) {
	buf := PutU2(nil, 0xABCD)
	assert.Equal(t, []byte{0xAB, 0xCD}, buf)
	v, err := GetU2(buf, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xABCD), v)
}

func TestU3RoundTrip(t *testing.T) {
	buf := PutU3(nil, 0x0102FE)
	assert.Equal(t, []byte{0x01, 0x02, 0xFE}, buf)
	v, err := GetU3(buf, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x0102FE), v)
}

func TestGetU2TruncatedFails(t *testing.T) {
	_, err := GetU2([]byte{0x01}, 0)
	assert.Error(t, err)
}

func TestGetU3TruncatedFails(t *testing.T) {
	_, err := GetU3([]byte{0x01, 0x02}, 0)
	assert.Error(t, err)

	_, err = GetU3([]byte{0x01, 0x02, 0x03}, 1)
	assert.Error(t, err)
}

func TestCheckRemaining(t *testing.T) {
	buf := make([]byte, 10)
	assert.NoError(t, CheckRemaining(buf, 5, 5))
	assert.Error(t, CheckRemaining(buf, 5, 6))
	assert.Error(t, CheckRemaining(buf, -1, 1))
	assert.Error(t, CheckRemaining(buf, 0, -1))
}
