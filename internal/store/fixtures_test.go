package store

import (
	"testing"

	"github.com/google/uuid"
)

func createTestUser(t *testing.T, testDB *TestDB) User {
	t.Helper()
	user := User{ID: uuid.New(), Email: "owner-" + uuid.New().String()[:8] + "@example.com", FirstName: "Ada"}
	testDB.MustExec(t, `INSERT INTO users (id, email, first_name) VALUES ($1, $2, $3)`,
		user.ID, user.Email, user.FirstName)
	return user
}

func createTestCampaign(t *testing.T, testDB *TestDB, userID uuid.UUID) Campaign {
	t.Helper()
	adSetID := "23850000000000001"
	campaign := Campaign{ID: uuid.New(), UserID: userID, Name: "Spring launch", MetaAdSetID: &adSetID}
	testDB.MustExec(t, `INSERT INTO campaigns (id, user_id, name, meta_adset_id) VALUES ($1, $2, $3, $4)`,
		campaign.ID, campaign.UserID, campaign.Name, campaign.MetaAdSetID)
	return campaign
}

func createTestAd(t *testing.T, testDB *TestDB, campaignID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	testDB.MustExec(t, `INSERT INTO ads (id, campaign_id, name, creative) VALUES ($1, $2, $3, $4)`,
		id, campaignID, "Ad "+id.String()[:8], `{"message":"hello","link":"https://example.com"}`)
	return id
}

func setupAdFixture(t *testing.T) (*TestDB, Campaign, uuid.UUID) {
	t.Helper()
	testDB := SetupTestDB(t, TestDBTypePostgres)
	testDB.Truncate(t)
	user := createTestUser(t, testDB)
	campaign := createTestCampaign(t, testDB, user.ID)
	return testDB, campaign, createTestAd(t, testDB, campaign.ID)
}
