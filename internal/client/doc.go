// SPDX-License-Identifier: Apache-2.0

// Package client implements the station agent application runtime.
//
// It wires local storage, the backend adapter, the connectivity monitor,
// business services and the control API into a single process lifecycle with
// graceful shutdown.
package client
