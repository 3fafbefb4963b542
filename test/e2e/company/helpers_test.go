package company_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/LofoWalker/upkeep/pkg/cryptox"
	"github.com/LofoWalker/upkeep/pkg/jwtx"
	"github.com/LofoWalker/upkeep/pkg/upkeepsdk"
)

/*
 * Shared setup for the upkeep end-to-end tests: the image is built once,
 * every test gets a fresh container and a signer whose public key the
 * container trusts.
 */

const (
	testImageName = "upkeep-test:latest"

	testIssuer = "https://id.upkeep.e2e"
	testKeyID  = "e2e-key-001"
	keysPath   = "/data/jwks.json"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building upkeep Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up upkeep Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/upkeep/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// service is a running upkeep container plus the key that signs tokens for it.
type service struct {
	client *upkeepsdk.SDKClient
	signer *jwtx.EdDSASigner
}

// setupService starts upkeep in a container. Extra env entries override the
// defaults.
func setupService(t *testing.T, extraEnv map[string]string) *service {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e tests need docker")
	}
	ctx := context.Background()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(testKeyID, pemKey)
	require.NoError(t, err)

	jwks, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	require.NoError(t, err)

	env := map[string]string{
		"UPKEEP_ENV":                 "test",
		"UPKEEP_DATABASE_FILE":       "/data/upkeep.db",
		"UPKEEP_JWT_PUBLIC_KEY_FILE": keysPath,
		"UPKEEP_JWT_ISSUER":          testIssuer,
		"UPKEEP_SWEEP_INTERVAL":      "1m",
		"LOG_LEVEL":                  "info",
		"LOG_FORMAT":                 "json",
		// Tests make many rapid requests from one address.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			Files: []testcontainers.ContainerFile{{
				Reader:            bytes.NewReader(jwks),
				ContainerFilePath: keysPath,
				FileMode:          0o644,
			}},
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &service{
		client: upkeepsdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port())),
		signer: signer,
	}
}

// register signs a token for a new customer and registers them.
func (s *service) register(t *testing.T, email string) (*upkeepsdk.Session, string) {
	t.Helper()

	id := uuid.NewString()
	tok, err := s.signer.Sign(jwtx.NewClaims(id, email, testIssuer, nil, time.Hour, time.Now()))
	require.NoError(t, err)

	sess := s.client.NewSession(tok)
	me, err := sess.RegisterMe(t.Context())
	require.NoError(t, err)
	require.Equal(t, id, me.ID)
	return sess, id
}

func assertHealthy(t *testing.T, health *upkeepsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *upkeepsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
