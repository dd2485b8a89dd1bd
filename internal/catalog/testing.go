package catalog

import "github.com/sha1n/mcp-docs-lookup/internal/domain"

// SampleDocumentation returns a small documentation tree modelled on the
// discord.js docs. It is exported for use in tests of dependent packages.
func SampleDocumentation() *domain.Documentation {
	return &domain.Documentation{
		Classes: []domain.Class{
			{
				Name:        "BaseMessageComponent",
				Description: "Represents an interactive component of a Message.",
				Props: []domain.Property{
					{Name: "type", Description: "The type of this component", Type: domain.TypeExpr{"MessageComponentType"}},
				},
				Meta: &domain.Meta{Line: 9, File: "BaseMessageComponent.js", Path: "src/structures"},
			},
			{
				Name:        "MessageButton",
				Description: "Represents a button message component.",
				Extends:     domain.TypeExpr{"BaseMessageComponent"},
				Props: []domain.Property{
					{Name: "customId", Type: domain.TypeExpr{"string"}},
					{Name: "disabled", Type: domain.TypeExpr{"boolean"}},
					{Name: "emoji", Type: domain.TypeExpr{"RawEmoji"}},
					{Name: "label", Type: domain.TypeExpr{"string"}},
					{Name: "style", Type: domain.TypeExpr{"MessageButtonStyle"}},
					{Name: "url", Type: domain.TypeExpr{"string"}},
				},
				Methods: []domain.Method{
					{Name: "setCustomId", Description: "Sets the custom id for this button"},
					{Name: "setDisabled", Description: "Sets the interactive status of the button"},
					{Name: "setLabel", Description: "Sets the label of this button"},
					{Name: "toJSON", Description: "Transforms the button to a plain object."},
					{Name: "resolveStyle", Description: "Resolves the style of a button", Access: domain.AccessPrivate},
				},
				Meta: &domain.Meta{Line: 12, File: "MessageButton.js", Path: "src/structures"},
			},
			{
				Name:        "Client",
				Description: "The main hub for interacting with the Discord API.",
				Extends:     domain.TypeExpr{"BaseClient"},
				Events: []domain.Event{
					{Name: "ready", Description: "Emitted when the client becomes ready."},
					{Name: "channelCreate", Description: "Emitted whenever a guild channel is created."},
				},
				Methods: []domain.Method{
					{Name: "login", Description: "Logs the client in.", Meta: &domain.Meta{Line: 205, File: "Client.js", Path: "src/client"}},
				},
				Props: []domain.Property{
					{Name: "user", Description: "User that the client is logged in as", Type: domain.TypeExpr{"ClientUser"}},
					{Name: "token", Description: "Authorization token", Access: domain.AccessPrivate, Type: domain.TypeExpr{"string"}},
				},
				Meta: &domain.Meta{Line: 38, File: "Client.js", Path: "src/client"},
			},
		},
		Interfaces: []domain.Class{
			{
				Name:        "InteractionResponses",
				Description: "Interface for classes that support shared interaction response types.",
				Methods: []domain.Method{
					{Name: "deferReply", Description: "Defers the reply to this interaction."},
					{Name: "reply", Description: "Creates a reply to this interaction."},
				},
			},
		},
		Typedefs: []domain.Typedef{
			{
				Name:        "ColorResolvable",
				Description: "Can be a number, hex string or an RGB array.",
				Type:        domain.TypeExpr{"string", "number", "Array", "<", "number", ">"},
				Meta:        &domain.Meta{Line: 432, File: "Util.js", Path: "src/util"},
			},
			{
				Name:        "MessageComponentType",
				Description: "The type of a message component.",
				Type:        domain.TypeExpr{"string"},
			},
			{
				Name:        "GuildChannelCreateOptions",
				Description: "Options used to create a new channel in a guild.",
				Type:        domain.TypeExpr{"Object"},
				Props: []domain.Property{
					{Name: "parent", Type: domain.TypeExpr{"CategoryChannelResolvable"}},
					{Name: "permissionOverwrites", Type: domain.TypeExpr{"Array", "<", "ColorResolvable", ">", "Collection", "<", "Snowflake", ", ", "ColorResolvable", ">"}},
				},
			},
		},
	}
}
