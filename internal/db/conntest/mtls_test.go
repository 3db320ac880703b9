//go:build conntest

package conntest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/internal/logging"
	"github.com/vvka-141/pgload/internal/testinfra"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestMTLS_ValidClientCert(t *testing.T) {
	config := parseConnString(t, mtlsContainer)
	config.SSLMode = "verify-ca"
	config.SSLCert = certPaths.ClientCert
	config.SSLKey = certPaths.ClientKey
	config.SSLRootCert = certPaths.CACert
	config.AuthMethod = pgload.AuthMethodCertificate

	conn := connectWithConfig(t, config)
	loadRoundTrip(t, conn, "mtls_roundtrip")
}

func TestMTLS_NoClientCert(t *testing.T) {
	config := parseConnString(t, mtlsContainer)
	config.SSLMode = "require"

	connector, err := db.NewConnector(config, logging.NewNullLogger())
	require.NoError(t, err)

	_, err = connector.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pgload.ErrConnectionFailed)
}

func TestMTLS_ForeignClientCert(t *testing.T) {
	otherBundle, err := testinfra.GenerateCertBundle([]string{"localhost"}, testinfra.PostgresUser)
	require.NoError(t, err)

	otherPaths, err := otherBundle.WriteToDir(t.TempDir())
	require.NoError(t, err)

	config := parseConnString(t, mtlsContainer)
	config.SSLMode = "verify-ca"
	config.SSLCert = otherPaths.ClientCert
	config.SSLKey = otherPaths.ClientKey
	config.SSLRootCert = certPaths.CACert

	connector, err := db.NewConnector(config, logging.NewNullLogger())
	require.NoError(t, err)

	_, err = connector.Connect(context.Background())
	require.Error(t, err)
}

func TestMTLS_CertFlags_EndToEnd(t *testing.T) {
	certFlags := &db.CertFlags{
		SSLCert:     certPaths.ClientCert,
		SSLKey:      certPaths.ClientKey,
		SSLRootCert: certPaths.CACert,
	}

	config, err := db.ResolveConnectionParams(mtlsContainer.ConnString, nil, nil, nil, nil, certFlags, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, pgload.AuthMethodCertificate, config.AuthMethod)

	conn := connectWithConfig(t, config)
	loadRoundTrip(t, conn, "mtls_flags_roundtrip")
}
