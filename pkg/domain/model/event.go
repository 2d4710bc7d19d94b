package model

import (
	"strings"

	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
)

// Setting is one entry of the settings list the platform posts alongside a
// message event. The shape mirrors the integration manifest settings.
type Setting struct {
	Label   string `json:"label"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

// InboundEvent is a decoded "message posted" webhook payload. It is
// immutable and scoped to a single request.
type InboundEvent struct {
	Message  string    `json:"message"`
	Settings []Setting `json:"settings"`
}

// Setting returns the value of the first setting whose label matches,
// ignoring case and surrounding whitespace
func (e *InboundEvent) Setting(label string) (string, bool) {
	for _, s := range e.Settings {
		if strings.EqualFold(strings.TrimSpace(s.Label), label) {
			return strings.TrimSpace(s.Default), true
		}
	}
	return "", false
}

// ChannelID extracts the channel identifier from the settings list.
// Returns an empty ChannelID when no channel setting is present.
func (e *InboundEvent) ChannelID() types.ChannelID {
	v, _ := e.Setting("channel")
	return types.ChannelID(v)
}

// NotificationsEnabled reports the "Enable Email Notifications" checkbox.
// A missing setting means enabled; only an explicit false disables sends.
func (e *InboundEvent) NotificationsEnabled() bool {
	v, ok := e.Setting("enable email notifications")
	if !ok {
		return true
	}
	switch strings.ToLower(v) {
	case "false", "0", "no", "off":
		return false
	}
	return true
}
