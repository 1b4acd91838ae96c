package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/hospital-exact/pkg/extract"
	"github.com/shouni/hospital-exact/pkg/types"
)

// ======================================================================
// モック (Mock) の定義
// ======================================================================

// MockFetcher はテスト用の extract.Fetcher インターフェースの実装です。
type MockFetcher struct {
	htmlContent string
	fetchError  error
	requested   []string
}

// FetchBytes はモックされたHTMLをバイト配列として返すか、エラーを返します。
func (m *MockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.requested = append(m.requested, url)
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	return []byte(m.htmlContent), nil
}

// hospitalPage は取得対象ページを模した HTML です。
const hospitalPage = `<html><head><title>Hospitals | Thrissur</title></head><body>
<nav><p>Home</p></nav>
<div class="entry-content">
  <h3>District Hospital Thrissur</h3>
  <p>Near the Swaraj Round, opposite the Vadakkunnathan temple grounds</p>
  <p>Email : dhtsr[at]kerala[dot]gov[dot]in Phone : 0487 2427778 Pincode : 680001</p>
  <h3>Government Medical College Hospital</h3>
  <p>Mulankunnathukavu post office, on the Thrissur Wadakkanchery road</p>
  <p>Email : mchtsr@gmail.com Phone : 0487-2200310 Website : https://gmctsr.org/ Pincode : 680596</p>
</div>
<footer><p>Footer</p></footer>
</body></html>`

// ======================================================================
// テスト関数
// ======================================================================

func TestNewExtractor(t *testing.T) {
	t.Run("success_with_valid_fetcher", func(t *testing.T) {
		extractor, err := extract.NewExtractor(&MockFetcher{})
		assert.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("error_with_nil_fetcher", func(t *testing.T) {
		extractor, err := extract.NewExtractor(nil)
		assert.Error(t, err)
		assert.Nil(t, extractor)
		assert.Contains(t, err.Error(), "Fetcher cannot be nil")
	})
}

func TestFetchAndExtract(t *testing.T) {
	const pageURL = "https://thrissur.example/hospitals/"

	testCases := []struct {
		name          string
		html          string
		fetchErr      error
		expected      []types.HospitalRecord
		expectedError bool
	}{
		{
			name:          "fetch_error",
			fetchErr:      errors.New("network timeout"),
			expectedError: true,
		},
		{
			name: "hospital_listing",
			html: hospitalPage,
			expected: []types.HospitalRecord{
				{
					Name:    "District Hospital Thrissur",
					Address: "Near the Swaraj Round, opposite the Vadakkunnathan temple grounds",
					Email:   "dhtsr@kerala.gov.in",
					Phone:   "0487 2427778",
					Pincode: "680001",
				},
				{
					Name:    "Government Medical College Hospital",
					Address: "Mulankunnathukavu post office, on the Thrissur Wadakkanchery road",
					Email:   "mchtsr@gmail.com",
					Phone:   "0487-2200310",
					Website: "https://gmctsr.org/",
					Pincode: "680596",
				},
			},
		},
		{
			name: "fallback_to_whole_document",
			html: `<html><body><section>
				<h4>ESI Hospital</h4>
				<p>Ayyanthole, behind the civil station on the Kanjani road</p>
			</section></body></html>`,
			expected: []types.HospitalRecord{
				{
					Name:    "ESI Hospital",
					Address: "Ayyanthole, behind the civil station on the Kanjani road",
				},
			},
		},
		{
			name:     "zero_qualifying_elements",
			html:     `<html><head><title>Hospitals</title></head><body><ul><li>Nothing here</li></ul><span>   </span></body></html>`,
			expected: []types.HospitalRecord{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &MockFetcher{
				htmlContent: tc.html,
				fetchError:  tc.fetchErr,
			}
			extractor, err := extract.NewExtractor(fetcher)
			require.NoError(t, err)

			records, err := extractor.FetchAndExtract(context.Background(), pageURL)
			assert.Equal(t, []string{pageURL}, fetcher.requested)

			if tc.expectedError {
				assert.ErrorIs(t, err, tc.fetchErr)
				assert.Nil(t, records)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, records)
		})
	}
}

func TestExtractFromHTML_DecodesDeclaredCharset(t *testing.T) {
	// "Centre" の後ろに ISO-8859-1 の "é" (0xE9) を置く
	html := []byte("<html><head><meta charset=\"iso-8859-1\"></head><body><article>" +
		"<p>Health Centre Caf\xe9</p></article></body></html>")

	records, err := extract.ExtractFromHTML(html)
	require.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "Health Centre Café", records[0].Name)
	}
}
