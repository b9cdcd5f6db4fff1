package common

// Subscription plan identifiers, mirrored from the billing provider.
const (
	PlanFree = "free_user"
	PlanPro  = "pro_model"
)

// Feature identifiers granted by plans.
const (
	FeatureUnlimitedDecks = "unlimited_deck_limit"
	FeatureAICards        = "ai_cards"
	FeatureBasicDeckLimit = "3_deck_limit"
)

// Business limits.
const (
	FreeDeckLimit        = 3
	AICardsPerGeneration = 10

	DeckNameMaxLength = 256
	CardTextMaxLength = 1000
	TopicMaxLength    = 256
)

// Payment defaults.
const (
	DefaultCurrency = "INR"
	ProPriceINR     = 299
)
