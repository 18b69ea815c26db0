// Package scene loads a Lua-scripted description of source trajectories and
// boundary-filter knobs and evaluates it once per audio block, outside the
// realtime mesh's hot path. It is an enrichment beyond the core spec: no
// external collaborator is required to drive a demo host's sources, so the
// demo scripts them instead.
package scene
