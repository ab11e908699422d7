package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpointTransportSelection(t *testing.T) {
	kind, url := endpoint{HttpEndpoint: "https://otlp.example.com"}.transport()
	require.Equal(t, "http", kind)
	require.Equal(t, "https://otlp.example.com", url)

	// grpc takes priority when both are configured
	kind, url = endpoint{
		GrpcEndpoint: "otlp.example.com:4317",
		HttpEndpoint: "https://otlp.example.com",
	}.transport()
	require.Equal(t, "grpc", kind)
	require.Equal(t, "otlp.example.com:4317", url)
}
