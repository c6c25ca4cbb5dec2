package sink

import (
	"bytes"
	"fmt"
	"strings"
)

// rootPlaceholder is replaced by the chart root id so several charts can
// share one page.
const rootPlaceholder = "__ROOT__"

const tooltipCSS = `
    .panel { opacity: 0; pointer-events: none; transition: opacity 0.1s ease; }
    .panel.visible { opacity: 1; transition: opacity 0.4s ease; }
    .panel-line.hovered { text-decoration: underline; }
    .bar, .delta-bar { cursor: pointer; }`

// tooltipJS positions a row's panel beside the pointer using the same
// rules as layout.TooltipPosition: rows in the last third open to the
// left and panels never extend below the container. The anchors computed
// at build time are used when the pointer cannot be mapped into the SVG.
const tooltipJS = `
    (function () {
      const root = document.getElementById('__ROOT__');
      if (!root) return;
      const tips = root.querySelector('.tooltips');
      if (!tips) return;
      const svg = root.ownerSVGElement || root;
      const rows = +tips.dataset.rows, bw = +tips.dataset.bandwidth, height = +tips.dataset.height;
      const place = (el, panel, evt) => {
        let x = +el.dataset.tipX, y = +el.dataset.tipY;
        const ctm = svg.getScreenCTM && svg.getScreenCTM();
        if (ctm && evt && typeof evt.clientX === 'number') {
          const pt = svg.createSVGPoint();
          pt.x = evt.clientX;
          pt.y = evt.clientY;
          const p = pt.matrixTransform(ctm.inverse());
          const w = +panel.dataset.w, h = +panel.dataset.h;
          x = +el.dataset.row > rows * 2 / 3 ? p.x - w - bw / 2 : p.x + bw * 1.5;
          y = Math.min(p.y, height - h);
        }
        if (isNaN(x) || isNaN(y)) return;
        panel.setAttribute('transform', 'translate(' + x + ',' + y + ')');
      };
      root.querySelectorAll('.bar, .delta-bar').forEach(el => {
        const panel = tips.querySelector('.panel[data-row="' + el.dataset.row + '"]');
        if (!panel) return;
        el.addEventListener('mouseenter', evt => {
          place(el, panel, evt);
          panel.querySelectorAll('.panel-line').forEach(t => t.classList.toggle('hovered', t.dataset.series === el.dataset.series));
          panel.classList.add('visible');
        });
        el.addEventListener('mousemove', evt => place(el, panel, evt));
        el.addEventListener('mouseleave', () => panel.classList.remove('visible'));
      });
    })();`

func renderTooltipScript(buf *bytes.Buffer, rootID string) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", tooltipCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n",
		strings.ReplaceAll(tooltipJS, rootPlaceholder, rootID))
}
