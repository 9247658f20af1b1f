package report

import "fmt"

const (
	messageReportTitle           = ":stopwatch: **編集時間レポート**"
	messageReportSummaryFormat   = "%d件のドキュメントで合計 %s（%d分）の編集がありました。"
	messageReportEmpty           = "対象期間に編集されたドキュメントはありません。"
	messageReportFailuresFormat  = ":warning: %d件のドキュメントは編集履歴の取得に失敗しました。"
	messageReportAttachmentTitle = "-# 詳細は添付ファイルを確認してください。"
)

func reportSummaryMessage(rep *Report, withAttachment bool) string {
	lines := messageReportTitle + "\n"
	if len(rep.Entries) == 0 {
		lines += messageReportEmpty
	} else {
		lines += fmt.Sprintf(messageReportSummaryFormat, len(rep.Entries), formatMinutesHM(rep.TotalMinutes()), rep.TotalMinutes())
	}
	if len(rep.Failures) > 0 {
		lines += "\n" + fmt.Sprintf(messageReportFailuresFormat, len(rep.Failures))
	}
	if withAttachment {
		lines += "\n" + messageReportAttachmentTitle
	}
	return lines
}
