// Package domain contains the core domain entities and types used by the
// gateway. These types represent the business concepts (inbound chatbot
// messages, agent replies and per-chat conversation state) and are
// intentionally free of infrastructure concerns so they can be shared across
// packages.
package domain
