package repository

// Descriptors for every entity served through the generic repository.
var (
	APIKeyEntity = EntityDescriptor{
		Table:    "api_keys",
		Fields:   []string{"name", "is_active"},
		Required: []string{"api_key", "api_secret", "name"},
	}
	UserEntity = EntityDescriptor{
		Table:    "users",
		Fields:   []string{"email", "full_name", "hashed_password", "is_active", "is_superuser"},
		Required: []string{"email", "hashed_password"},
	}
	FundInfoEntity = EntityDescriptor{
		Table:    "fund_info",
		Fields:   []string{"name", "description", "address", "phone", "email", "is_active"},
		Required: []string{"name"},
		Preload:  []string{"SocialLinks", "BankDetails"},
	}
	SocialLinkEntity = EntityDescriptor{
		Table:    "social_links",
		Fields:   []string{"fund_id", "platform", "url"},
		Required: []string{"fund_id", "platform", "url"},
	}
	BankDetailEntity = EntityDescriptor{
		Table:    "bank_details",
		Fields:   []string{"fund_id", "bank_name", "account_number", "swift_code", "iban", "currency"},
		Required: []string{"fund_id", "bank_name", "account_number", "currency"},
	}
	FeedbackEntity = EntityDescriptor{
		Table:    "feedback",
		Fields:   []string{"name", "email", "message", "is_read"},
		Required: []string{"name", "email", "message"},
	}
	CampaignEntity = EntityDescriptor{
		Table:    "donation_campaigns",
		Fields:   []string{"title", "description", "is_active"},
		Required: []string{"title", "description"},
		Preload:  []string{"Wallets"},
	}
	WalletEntity = EntityDescriptor{
		Table:    "wallets",
		Fields:   []string{"campaign_id", "name", "usdt_trc20", "bch", "eth", "btc"},
		Required: []string{"campaign_id", "name"},
	}
	PublicationEntity = EntityDescriptor{
		Table: "publications",
		Fields: []string{
			"title", "slug", "photo", "text", "is_active", "is_fundraising",
			"views", "source_link", "file_path", "ipfs_link",
		},
		Required: []string{"title", "slug", "text"},
		Preload:  []string{"Images", "Videos"},
	}
	PublicationImageEntity = EntityDescriptor{
		Table:    "publication_images",
		Fields:   []string{"image"},
		Required: []string{"publication_id", "image"},
	}
	PublicationVideoEntity = EntityDescriptor{
		Table:    "publication_videos",
		Fields:   []string{"video"},
		Required: []string{"publication_id", "video"},
	}
	TgUserEntity = EntityDescriptor{
		Table:    "tg_users",
		Fields:   []string{"id_telegram", "name", "uuid_id"},
		Required: []string{"id_telegram", "name"},
	}
)
