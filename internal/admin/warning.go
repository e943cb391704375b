package admin

import (
	"fmt"

	"db3dgallery/internal/models"
)

// Warning codes. A warning never blocks an edit; it tells the admin the
// edit may not survive a reload or that part of an upload was dropped.
const (
	WarnStorageFull = "storage_full"
	WarnOversize    = "oversize"
	WarnSkipped     = "skipped"
)

// Warning is an advisory message shown to the admin after a mutation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	storageFullOverride = Warning{
		Code:    WarnStorageFull,
		Message: "注意：瀏覽器儲存空間已滿。圖片已更新於畫面，但重整後會消失。\n請務必立即下載設定檔 (JSON) 以保存變更。",
	}

	storageFullStructure = Warning{
		Code:    WarnStorageFull,
		Message: "儲存結構失敗：空間不足。變更僅保留於記憶體中，請立即匯出設定檔。",
	}
)

// batchStorageFull is the warning for a batch that could not be persisted.
func batchStorageFull(n int) Warning {
	return Warning{
		Code: WarnStorageFull,
		Message: fmt.Sprintf("已成功加入 %d 張圖片！\n\n注意：資料量超過瀏覽器暫存上限，無法自動存檔。重整頁面將會遺失這些資料。\n\n請務必立即點擊「下載網站設定檔」以保存資料！", n),
	}
}

// oversizeWarning is the advisory for a file above its class threshold.
func oversizeWarning(class models.MediaClass, size int64) Warning {
	var msg string
	switch class {
	case models.MediaLogo:
		msg = "Logo 圖片過大，建議小於 2MB。"
	case models.MediaVideo:
		msg = "注意：影片檔案超過 5MB，可能會導致瀏覽器儲存空間不足而儲存失敗。建議使用極短的循環影片或大幅壓縮後的檔案。"
	default:
		msg = "圖片檔案過大，建議小於 3MB 以避免儲存空間不足。"
	}
	return Warning{
		Code:    WarnOversize,
		Message: fmt.Sprintf("%s (%s)", msg, models.HumanSize(size)),
	}
}

// skippedWarning reports a batch file dropped for exceeding the threshold.
func skippedWarning(name string) Warning {
	return Warning{
		Code:    WarnSkipped,
		Message: fmt.Sprintf("File %s is too large (>%s), skipping.", name, models.HumanSize(models.MediaImage.Threshold())),
	}
}
