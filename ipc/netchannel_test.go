package ipc_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pagesim "github.com/oss6/pagesim"
	"github.com/oss6/pagesim/ipc"
)

func TestNetChannelRoundTripsOverAUnixSocket(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "pagesim.sock")

	server, err := ipc.Listen(sockPath)
	require.NoError(t, err)
	defer server.Close()

	client, err := ipc.Dial(sockPath)
	require.NoError(t, err)
	defer client.Close()

	req := pagesim.NewRequest(1, 1024, true)
	require.NoError(t, client.SendRequest(req))

	var got pagesim.Request
	require.Eventually(t, func() bool {
		var recvErr error
		got, recvErr = server.ReceiveRequest()
		return recvErr == nil
	}, time.Second, time.Millisecond)
	require.Equal(t, req.ID, got.ID)

	resp := pagesim.NewResponse(req)
	require.NoError(t, server.SendResponse(resp))

	got2, err := client.AwaitResponse(1)
	require.NoError(t, err)
	require.Equal(t, resp.ID, got2.ID)
}

func TestNetChannelSendResponseWithoutKnownPeerErrors(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "pagesim.sock")

	server, err := ipc.Listen(sockPath)
	require.NoError(t, err)
	defer server.Close()

	err = server.SendResponse(pagesim.Response{ToPid: 99, Granted: true})
	require.Error(t, err)
}

func TestNetChannelCloseIsIdempotent(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "pagesim.sock")

	server, err := ipc.Listen(sockPath)
	require.NoError(t, err)

	require.NoError(t, server.Close())
	require.NoError(t, server.Close())
}
