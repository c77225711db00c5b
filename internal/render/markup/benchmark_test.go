package markup

import (
	"testing"

	"github.com/glabrego/stack-cli/internal/style"
)

func BenchmarkRender_TypicalAnswer(b *testing.B) {
	body := `<p>You can use <code>context.WithTimeout</code>:</p>
<pre><code>ctx, cancel := context.WithTimeout(context.Background(), time.Second)
defer cancel()
</code></pre>
<h2>Why</h2>
<blockquote><p>The <strong>caller</strong> owns the <em>deadline</em>.</p></blockquote>
<hr>
<p>See also x<sup>2</sup>.</p>`

	tr := New(style.NewANSI(nil), 80)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = tr.Render(body)
	}
}
