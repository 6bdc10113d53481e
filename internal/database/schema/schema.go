package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Players

CREATE TABLE IF NOT EXISTS players (
    player_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    discord_id VARCHAR(64) UNIQUE NOT NULL,
    username VARCHAR(100) NOT NULL,
    backpack_level INTEGER NOT NULL DEFAULT 1,
    elevated BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Currency balances, one row per player, created at registration
CREATE TABLE IF NOT EXISTS balances (
    player_id UUID PRIMARY KEY REFERENCES players(player_id) ON DELETE CASCADE,
    silver BIGINT NOT NULL DEFAULT 0 CHECK (silver >= 0),
    star BIGINT NOT NULL DEFAULT 0 CHECK (star >= 0),
    gem BIGINT NOT NULL DEFAULT 0 CHECK (gem >= 0),
    voucher BIGINT NOT NULL DEFAULT 0 CHECK (voucher >= 0)
);

-- Level state, one row per player, created at registration
CREATE TABLE IF NOT EXISTS player_levels (
    player_id UUID PRIMARY KEY REFERENCES players(player_id) ON DELETE CASCADE,
    current_level INTEGER NOT NULL DEFAULT 1,
    current_xp INTEGER NOT NULL DEFAULT 0,
    required_xp INTEGER NOT NULL DEFAULT 43
);

-- Owned cards. Card IDs are only unique within a player's collection.
CREATE TABLE IF NOT EXISTS cards (
    player_id UUID NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
    card_id VARCHAR(6) NOT NULL,
    rarity VARCHAR(20) NOT NULL,
    condition VARCHAR(20) NOT NULL,
    character_name VARCHAR(100) NOT NULL,
    shiny BOOLEAN NOT NULL DEFAULT FALSE,
    locked BOOLEAN NOT NULL DEFAULT FALSE,
    in_sleeve BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (player_id, card_id)
);

-- Stackable non-card items
CREATE TABLE IF NOT EXISTS player_items (
    player_id UUID NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
    item_name VARCHAR(100) NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    PRIMARY KEY (player_id, item_name)
);

-- Action cooldown timestamps
CREATE TABLE IF NOT EXISTS player_cooldowns (
    player_id UUID NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
    action_name VARCHAR(50) NOT NULL,
    last_used_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (player_id, action_name)
);
`
