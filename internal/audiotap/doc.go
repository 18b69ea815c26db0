// Package audiotap turns a dwm.RealtimeDriver into a pull-based audio
// output: an oto.Player repeatedly calls Read, which generates one
// BlockSize-sample stereo block at a time from the mesh and hands it back
// as interleaved float32 bytes. A headless build tag swaps in a twin that
// still drives the mesh (so diagnostics stay meaningful in CI) but opens no
// real output device.
package audiotap
