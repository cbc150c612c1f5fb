// Package models defines the persisted account and polygon records.
//
// The JSON shape of these types is the on-disk format of the record store:
// an array of accounts under the "users" key, each account optionally
// carrying its polygons. Points are encoded as [lat, lon] pairs.
package models
