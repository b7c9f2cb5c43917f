package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEncodeCSV(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	created := time.Date(2024, 5, 1, 9, 30, 1, 0, time.FixedZone("CEST", 2*3600))

	out := string(EncodeCSV([]models.WaitlistEntry{
		{
			Email:                  "ada@example.com",
			FirstName:              testutil.StringPtr(`Ada "The Countess"`),
			SubscribedAt:           at,
			Source:                 "waitlist",
			ConvertKitSubscriberID: testutil.StringPtr("987"),
			CreatedAt:              created,
		},
		{
			Email:        "bob@example.com",
			SubscribedAt: at,
			Source:       "import",
			CreatedAt:    at,
		},
	}))

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Email,First Name,Subscribed At,Source,ConvertKit ID,Synced,Created At", lines[0])
	assert.Equal(t,
		`"ada@example.com","Ada ""The Countess""","2024-05-01T09:30:00Z","waitlist","987","Yes","2024-05-01T07:30:01Z"`,
		lines[1])
	assert.Equal(t,
		`"bob@example.com","","2024-05-01T09:30:00Z","import","","No","2024-05-01T09:30:00Z"`,
		lines[2])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestEncodeCSV_HeaderOnly(t *testing.T) {
	assert.Equal(t, "Email,First Name,Subscribed At,Source,ConvertKit ID,Synced,Created At", string(EncodeCSV(nil)))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{45 * time.Second, "Just now"},
		{5 * time.Minute, "5m ago"},
		{59 * time.Minute, "59m ago"},
		{3 * time.Hour, "3h ago"},
		{26 * time.Hour, "1d ago"},
		{6 * 24 * time.Hour, "6d ago"},
		{10 * 24 * time.Hour, "5/10/2024"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeAgo(now.Add(-tc.ago), now), tc.ago.String())
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 5, 20, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "subscribers_2024-05-21.csv", ExportFilename(now))
}

func TestStartOfDay_UsesLocalZone(t *testing.T) {
	zone := time.FixedZone("WAT", 3600)
	now := time.Date(2024, 5, 20, 0, 30, 0, 0, zone)

	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, zone), startOfDay(now))
}

func TestBucketByDay(t *testing.T) {
	buckets := bucketByDay([]time.Time{
		time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC),
		// 2024-05-02T00:30Z in UTC
		time.Date(2024, 5, 1, 20, 30, 0, 0, time.FixedZone("EDT", -4*3600)),
	})

	assert.Equal(t, map[string]int64{"2024-05-01": 2, "2024-05-02": 1}, buckets)
}
