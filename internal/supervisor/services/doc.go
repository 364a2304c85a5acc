// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services adapts server components to suture's Service interface.

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService wraps the ListenAndServe/Shutdown lifecycle of
*http.Server. WebSocketHubService delegates to the hub's RunWithContext,
which already follows the Serve pattern.

Return values drive restarts:

	nil        stopped cleanly, not restarted
	error      crashed, restarted with backoff
	ctx.Err()  shutdown requested

Both services implement fmt.Stringer so supervisor events name them.
*/
package services
