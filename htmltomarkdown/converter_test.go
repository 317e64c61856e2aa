package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ geolens.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Acme Analytics tracks page speed without cookies.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Acme Analytics tracks page speed without cookies.")
	})

	t.Run("converts headings at every level", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Pricing</h1><h2>Starter plan</h2><h3>Usage limits</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Pricing")
		assert.Contains(t, md, "## Starter plan")
		assert.Contains(t, md, "### Usage limits")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See the <a href="https://example.com/docs">setup guide</a> to get started.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[setup guide](https://example.com/docs)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>Unlimited dashboards</li><li>Weekly reports</li><li>API access</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Unlimited dashboards")
		assert.Contains(t, md, "- Weekly reports")
		assert.Contains(t, md, "- API access")
	})

	t.Run("converts ordered lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ol><li>Create an account</li><li>Add the snippet</li><li>Wait for data</li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "1. Create an account")
		assert.Contains(t, md, "2. Add the snippet")
		assert.Contains(t, md, "3. Wait for data")
	})

	t.Run("converts inline code", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Install with <code>npm install acme</code> and reload.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "`npm install acme`")
	})

	t.Run("converts fenced code blocks with a language hint", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<pre><code class="language-js">acme.init({ site: "example.com" })
</code></pre>`)

		require.NoError(t, err)
		assert.Contains(t, md, "```js")
		assert.Contains(t, md, `acme.init({ site: "example.com" })`)
	})

	t.Run("converts fenced code blocks without a hint", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<pre><code>curl https://api.example.com/v1/audits</code></pre>`)

		require.NoError(t, err)
		assert.Contains(t, md, "```")
		assert.Contains(t, md, "curl https://api.example.com/v1/audits")
	})

	t.Run("keeps tables as pipe tables", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<table>
<thead><tr><th>Plan</th><th>Price</th></tr></thead>
<tbody><tr><td>Starter</td><td>$29</td></tr><tr><td>Team</td><td>$99</td></tr></tbody>
</table>`)

		require.NoError(t, err)
		// Cells may carry alignment padding, so match content, not layout.
		assert.Contains(t, md, "Plan")
		assert.Contains(t, md, "Starter")
		assert.Contains(t, md, "$99")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("converts emphasis", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>No cookies</strong> and <em>no fingerprinting</em>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**No cookies**")
		assert.Contains(t, md, "*no fingerprinting*")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<blockquote><p>Setup took five minutes.</p></blockquote>`)

		require.NoError(t, err)
		assert.Contains(t, md, "> Setup took five minutes.")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, geolens.EINVALID, geolens.ErrorCode(err))
	})

	t.Run("handles a full article page", func(t *testing.T) {
		t.Parallel()

		html := `<article>
<h1>State of Web Performance 2025</h1>
<p>We measured 4,000 production sites over six months.</p>
<h2>Key Findings</h2>
<p>Median page weight grew 12% year over year.</p>
<h2>Methodology</h2>
<p>Every site was crawled weekly with <code>lighthouse</code>.</p>
<h3>Results by Framework</h3>
<table>
<thead><tr><th>Framework</th><th>Median LCP</th><th>Sample</th></tr></thead>
<tbody>
<tr><td>React</td><td>2.8s</td><td>1,450</td></tr>
<tr><td>Svelte</td><td>1.9s</td><td>320</td></tr>
</tbody>
</table>
</article>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# State of Web Performance 2025")
		assert.Contains(t, md, "## Key Findings")
		assert.Contains(t, md, "### Results by Framework")
		assert.Contains(t, md, "`lighthouse`")
		assert.Contains(t, md, "Framework")
		assert.Contains(t, md, "Median LCP")
		assert.Contains(t, md, "Svelte")
	})
}
